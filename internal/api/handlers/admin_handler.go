package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Darkgoatie/discord-auctions/internal/domain"
	"github.com/Darkgoatie/discord-auctions/internal/services"
	"github.com/Darkgoatie/discord-auctions/pkg/logger"
)

// AdminHandler exposes a small read-mostly HTTP surface for operators:
// health, the stored auctions, and a force-delete escape hatch for records
// that can no longer be closed from Discord.
type AdminHandler struct {
	manager    *services.AuctionManager
	instanceID string
	log        logger.Logger
}

func NewAdminHandler(manager *services.AuctionManager, instanceID string, log logger.Logger) *AdminHandler {
	return &AdminHandler{
		manager:    manager,
		instanceID: instanceID,
		log:        log,
	}
}

func (h *AdminHandler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/auctions", h.ListAuctions)
	e.GET("/auctions/:guild/:channel", h.GetAuction)
	e.DELETE("/auctions/:guild/:channel", h.DeleteAuction)
}

type auctionResponse struct {
	GuildID   string  `json:"guild_id"`
	ChannelID string  `json:"channel_id"`
	Item      string  `json:"item"`
	Price     float64 `json:"price"`
	HostedBy  string  `json:"hosted_by"`
	StartedAt int64   `json:"started_at"`
	Winner    string  `json:"winner"`
	BidLimit  float64 `json:"bid_limit"`
	ElapsedMS int64   `json:"elapsed_ms"`
}

func toResponse(a *domain.Auction) auctionResponse {
	return auctionResponse{
		GuildID:   a.GuildID,
		ChannelID: a.ChannelID,
		Item:      a.Item,
		Price:     a.Price,
		HostedBy:  a.HostedBy,
		StartedAt: a.StartedAt.UnixMilli(),
		Winner:    a.Winner,
		BidLimit:  a.BidLimit,
		ElapsedMS: a.Elapsed().Milliseconds(),
	}
}

func (h *AdminHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":   "ok",
		"instance": h.instanceID,
	})
}

func (h *AdminHandler) ListAuctions(c echo.Context) error {
	auctions, err := h.manager.FetchAll(c.Request().Context())
	if err != nil {
		h.log.Error("list auctions", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list auctions"})
	}

	resp := make([]auctionResponse, 0, len(auctions))
	for _, a := range auctions {
		resp = append(resp, toResponse(a))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) GetAuction(c echo.Context) error {
	auction, err := h.manager.Fetch(c.Request().Context(), c.Param("guild"), c.Param("channel"))
	if err != nil {
		h.log.Error("fetch auction", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch auction"})
	}
	if auction == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no auction for this channel"})
	}
	return c.JSON(http.StatusOK, toResponse(auction))
}

func (h *AdminHandler) DeleteAuction(c echo.Context) error {
	guildID, channelID := c.Param("guild"), c.Param("channel")
	if err := h.manager.Delete(c.Request().Context(), guildID, channelID); err != nil {
		h.log.Error("delete auction", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete auction"})
	}
	h.log.Info("auction force-deleted", "guild_id", guildID, "channel_id", channelID, "request_id", c.Response().Header().Get(echo.HeaderXRequestID))
	return c.NoContent(http.StatusNoContent)
}
