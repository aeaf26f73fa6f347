package config

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
)

type Config struct {
	Discord  DiscordConfig  `mapstructure:"discord"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	MySQL    MySQLConfig    `mapstructure:"mysql"`
	Server   ServerConfig   `mapstructure:"server"`
	Sweep    SweepConfig    `mapstructure:"sweep"`
	Instance InstanceConfig `mapstructure:"instance"`
}

type DiscordConfig struct {
	Token string `mapstructure:"token"`
	AppID string `mapstructure:"app_id"`
	// GuildID scopes command registration to one guild; empty registers
	// the commands globally.
	GuildID string `mapstructure:"guild_id"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type MySQLConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type ServerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

type SweepConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Schedule string        `mapstructure:"schedule"`
	MaxAge   time.Duration `mapstructure:"max_age"`
}

type InstanceConfig struct {
	ID string `mapstructure:"id"`
}

func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("discord.token", "")
	v.SetDefault("discord.app_id", "")
	v.SetDefault("discord.guild_id", "")
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "discord_auctions")
	v.SetDefault("mysql.dsn", "auctions_user:auctions_pass@tcp(localhost:3306)/auctions_db?parseTime=true")
	v.SetDefault("mysql.max_open_conns", 25)
	v.SetDefault("mysql.max_idle_conns", 10)
	v.SetDefault("mysql.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("server.enabled", true)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("sweep.enabled", true)
	v.SetDefault("sweep.schedule", "@every 10m")
	v.SetDefault("sweep.max_age", 24*time.Hour)
	v.SetDefault("instance.id", fmt.Sprintf("discord-auctions-%s", uuid.NewString()[:8]))

	// Configuration file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/discord-auctions/")

	// Environment variable support
	v.AutomaticEnv()

	// Environment variable mappings
	v.BindEnv("discord.token", "DISCORD_TOKEN")
	v.BindEnv("discord.app_id", "DISCORD_APP_ID")
	v.BindEnv("discord.guild_id", "DISCORD_GUILD_ID")
	v.BindEnv("storage.driver", "STORAGE_DRIVER")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")
	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.database", "MONGO_DATABASE")
	v.BindEnv("mysql.dsn", "MYSQL_DSN")
	v.BindEnv("mysql.max_open_conns", "MYSQL_MAX_OPEN_CONNS")
	v.BindEnv("mysql.max_idle_conns", "MYSQL_MAX_IDLE_CONNS")
	v.BindEnv("mysql.conn_max_lifetime", "MYSQL_CONN_MAX_LIFETIME")
	v.BindEnv("server.enabled", "SERVER_ENABLED")
	v.BindEnv("server.host", "SERVER_HOST")
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("sweep.enabled", "SWEEP_ENABLED")
	v.BindEnv("sweep.schedule", "SWEEP_SCHEDULE")
	v.BindEnv("sweep.max_age", "SWEEP_MAX_AGE")
	v.BindEnv("instance.id", "INSTANCE_ID")

	// Read configuration file (optional - defaults/env vars cover the rest)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	switch config.Storage.Driver {
	case DriverMemory, DriverRedis, DriverMongo, DriverMySQL:
	default:
		return nil, fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	return &config, nil
}
