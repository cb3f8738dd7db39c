// Command statuswatch polls the status page and prints the server status to
// the terminal every time it is refreshed.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/smell-of-curry/pokebedrock-status/statuspage"
	"github.com/smell-of-curry/pokebedrock-status/statuspage/view"
)

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

	fetcher := view.NewHTTPFetcher(conf.View.StatusURL, conf.Minecraft.QueryTimeout.Std()+conf.PollInterval())
	model := view.NewModel(log, fetcher)
	poller := view.NewPoller(model, conf.PollInterval(), func(s view.State) {
		fmt.Printf("%s\n\n", view.Render(s))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Watching server status...", "url", conf.View.StatusURL, "interval", conf.PollInterval())
	if err := poller.Start(ctx); err != nil {
		panic(err)
	}
	<-ctx.Done()
	poller.Stop()
}
