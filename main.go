package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/smell-of-curry/pokebedrock-status/statuspage"
)

// main ...
func main() {
	conf, err := statuspage.ReadConfig()
	if err != nil {
		panic(err)
	}

	level, err := statuspage.ParseLogLevel(conf.StatusPage.LogLevel)
	if err != nil {
		panic(err)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	page, err := statuspage.NewStatusPage(log, conf, nil)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		if err := page.Close(); err != nil {
			log.Error("failed to close status page", "error", err)
		}
	}()

	if err := page.Start(); err != nil {
		log.Error("status page stopped", "error", err)
		os.Exit(1)
	}
}
