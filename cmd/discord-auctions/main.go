package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	redisclient "github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Darkgoatie/discord-auctions/internal/api/handlers"
	"github.com/Darkgoatie/discord-auctions/internal/bot"
	"github.com/Darkgoatie/discord-auctions/internal/config"
	"github.com/Darkgoatie/discord-auctions/internal/domain"
	"github.com/Darkgoatie/discord-auctions/internal/infrastructure/memory"
	mongostore "github.com/Darkgoatie/discord-auctions/internal/infrastructure/mongo"
	mysqlstore "github.com/Darkgoatie/discord-auctions/internal/infrastructure/mysql"
	redisstore "github.com/Darkgoatie/discord-auctions/internal/infrastructure/redis"
	"github.com/Darkgoatie/discord-auctions/internal/services"
	"github.com/Darkgoatie/discord-auctions/pkg/logger"
)

const connectTimeout = 10 * time.Second

func main() {
	log := logger.New()
	log.Info("starting discord-auctions")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", "error", err)
	}
	if cfg.Discord.Token == "" {
		log.Fatal("discord token is required (DISCORD_TOKEN)")
	}
	if cfg.Discord.AppID == "" {
		log.Fatal("discord application id is required (DISCORD_APP_ID)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	store, closeStore, err := openStore(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal("open storage", "driver", cfg.Storage.Driver, "error", err)
	}
	defer closeStore()

	manager := services.NewAuctionManager(store, log.With("component", "manager"))

	b, err := bot.New(cfg.Discord.Token, cfg.Discord.AppID, cfg.Discord.GuildID,
		manager, log.With("component", "bot"))
	if err != nil {
		log.Fatal("create bot", "error", err)
	}
	if err := b.Start(); err != nil {
		log.Fatal("start bot", "error", err)
	}
	defer func() {
		if err := b.Stop(); err != nil {
			log.Error("stop bot", "error", err)
		}
	}()

	if cfg.Sweep.Enabled {
		sweeper := services.NewSweeper(manager, b, cfg.Sweep.MaxAge, log.With("component", "sweeper"))
		if err := sweeper.Start(cfg.Sweep.Schedule); err != nil {
			log.Fatal("start sweeper", "error", err)
		}
		defer sweeper.Stop()
	}

	if cfg.Server.Enabled {
		e := echo.New()
		e.HideBanner = true
		e.Use(middleware.Recover())
		e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator: uuid.NewString,
		}))

		admin := handlers.NewAdminHandler(manager, cfg.Instance.ID, log.With("component", "admin"))
		admin.Register(e)

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		go func() {
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("admin server stopped", "error", err)
			}
		}()
		log.Info("admin server listening", "address", addr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := e.Shutdown(shutdownCtx); err != nil {
				log.Error("shutdown admin server", "error", err)
			}
		}()
	}

	log.Info("discord-auctions running", "instance", cfg.Instance.ID, "driver", cfg.Storage.Driver)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")
}

// openStore builds the configured storage backend and verifies the
// connection before the bot goes online.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (domain.AuctionStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory storage, auctions will not survive a restart")
		return memory.New(), func() {}, nil

	case config.DriverRedis:
		rdb := redisclient.NewClient(&redisclient.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		log.Info("connected to redis", "address", cfg.Redis.Address)
		return redisstore.NewStore(rdb), func() {
			if err := rdb.Close(); err != nil {
				log.Error("close redis client", "error", err)
			}
		}, nil

	case config.DriverMongo:
		client, err := mongodriver.Connect(ctx, mongooptions.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			return nil, nil, fmt.Errorf("connect to mongo: %w", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			return nil, nil, fmt.Errorf("ping mongo: %w", err)
		}
		log.Info("connected to mongo", "database", cfg.Mongo.Database)
		return mongostore.NewStore(client.Database(cfg.Mongo.Database)), func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Error("disconnect mongo client", "error", err)
			}
		}, nil

	case config.DriverMySQL:
		db, err := sql.Open("mysql", cfg.MySQL.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql: %w", err)
		}
		db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ping mysql: %w", err)
		}
		store := mysqlstore.NewStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ensure mysql schema: %w", err)
		}
		log.Info("connected to mysql")
		return store, func() {
			if err := db.Close(); err != nil {
				log.Error("close mysql connection", "error", err)
			}
		}, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
