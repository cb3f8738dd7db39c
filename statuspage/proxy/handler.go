// Package proxy serves the status of the configured Minecraft server as JSON,
// so that browsers never talk to the game server themselves.
package proxy

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/smell-of-curry/pokebedrock-status/statuspage/internal"
	"github.com/smell-of-curry/pokebedrock-status/statuspage/query"
)

// Config is the server the handler reports on. It is built once on start and never changes.
type Config struct {
	Host    string
	Port    int
	Timeout time.Duration
}

// Handler answers status requests with a single query per request. It holds no
// state besides its configuration, so it may serve requests concurrently.
type Handler struct {
	log     *slog.Logger
	conf    Config
	querier query.Querier
}

// NewHandler ...
func NewHandler(log *slog.Logger, conf Config, querier query.Querier) *Handler {
	if conf.Timeout <= 0 {
		conf.Timeout = internal.DefaultQueryTimeout
	}
	return &Handler{log: log, conf: conf, querier: querier}
}

// Status queries the server and returns the response body along with the HTTP
// status code to send it with. It never returns an error: every failure is
// turned into an offline status.
func (h *Handler) Status(ctx context.Context) (Status, int) {
	if h.conf.Host == "" {
		return OfflineStatus(MessageConfigMissing), http.StatusInternalServerError
	}

	ctx, cancel := context.WithTimeout(ctx, h.conf.Timeout)
	defer cancel()

	info, err := h.querier.Query(ctx, h.conf.Host, h.conf.Port)
	if err != nil {
		h.log.Error("error querying minecraft server", "host", h.conf.Host, "port", h.conf.Port, "error", err)
		sentry.CaptureException(err)
		return OfflineStatus(MessageQueryFailed), http.StatusInternalServerError
	}
	return OnlineStatus(info), http.StatusOK
}

// GetStatus handles GET /api/server-status.
func (h *Handler) GetStatus(c *gin.Context) {
	st, code := h.Status(c.Request.Context())
	c.Header("Cache-Control", "no-store")
	c.JSON(code, st)
}
