package statuspage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/smell-of-curry/pokebedrock-status/statuspage/internal"
	"github.com/smell-of-curry/pokebedrock-status/statuspage/proxy"
	"github.com/smell-of-curry/pokebedrock-status/statuspage/query"
	"github.com/smell-of-curry/pokebedrock-status/statuspage/web"
)

// StatusPage serves the status page and the status proxy endpoint behind it.
type StatusPage struct {
	log  *slog.Logger
	conf Config

	router *gin.Engine
	srv    *http.Server
	sentry bool
}

// NewStatusPage creates a status page that queries servers through querier. A
// nil querier selects the querier of the configured edition.
func NewStatusPage(log *slog.Logger, conf Config, querier query.Querier) (*StatusPage, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if querier == nil {
		q, err := query.New(query.Edition(conf.Minecraft.Edition))
		if err != nil {
			return nil, err
		}
		querier = q
	}

	page := &StatusPage{
		log:  log,
		conf: conf,
	}
	if err := page.setupSentry(); err != nil {
		return nil, err
	}
	if err := page.setupGin(querier); err != nil {
		return nil, err
	}

	page.srv = &http.Server{
		Addr:              conf.StatusPage.Address,
		Handler:           page.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if conf.Minecraft.Host == "" {
		log.Warn("no minecraft server configured, status requests will fail", "env", internal.EnvServerIP)
	}
	return page, nil
}

// setupSentry enables error reporting if a DSN is configured.
func (page *StatusPage) setupSentry() error {
	dsn := page.conf.StatusPage.SentryDsn
	if dsn == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
		return fmt.Errorf("sentry: %w", err)
	}
	page.sentry = true
	return nil
}

// setupGin sets up gin with the page and the status proxy endpoint.
func (page *StatusPage) setupGin(querier query.Querier) error {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(page.log))

	h := proxy.NewHandler(page.log, page.conf.Proxy(), querier)
	router.GET(internal.StatusRoute, h.GetStatus)

	err := web.Register(router, web.Config{
		StatusURL:    internal.StatusRoute,
		PollInterval: page.conf.PollInterval(),
	})
	if err != nil {
		return err
	}
	page.router = router
	return nil
}

// Handler returns the HTTP handler of the status page.
func (page *StatusPage) Handler() http.Handler {
	return page.router
}

// Start serves the status page. It blocks until the page is closed.
func (page *StatusPage) Start() error {
	page.log.Info("Starting status page...",
		"address", page.conf.StatusPage.Address,
		"host", page.conf.Minecraft.Host,
		"port", page.conf.Minecraft.Port,
		"edition", page.conf.Minecraft.Edition)

	if err := page.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("status page: %w", err)
	}
	return nil
}

// Close shuts the HTTP server down, waiting for in-flight requests, and
// flushes pending error reports.
func (page *StatusPage) Close() error {
	page.log.Debug("Closing HTTP Server...")
	ctx, cancel := context.WithTimeout(context.Background(), internal.ShutdownTimeout)
	defer cancel()
	err := page.srv.Shutdown(ctx)

	if page.sentry {
		page.log.Debug("Flushing Sentry...")
		sentry.Flush(internal.SentryFlushTimeout)
	}
	return err
}
