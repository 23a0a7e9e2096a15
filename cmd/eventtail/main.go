// Command eventtail prints navigation and feedback events as the servers
// publish them to NATS.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"streetmix-be/internal/config"
	"streetmix-be/pkg/events"
	pktNats "streetmix-be/pkg/nats"

	"github.com/fatih/color"
)

func main() {
	eventType := flag.String("type", "*", "event type to follow, e.g. PAGE_URL_UPDATED")
	durable := flag.String("durable", "", "durable consumer name; empty follows new events only")
	flag.Parse()

	cfg := config.Load()
	if cfg.App.NatsURL == "" {
		log.Fatal("Error: NATS_URL is not set")
	}

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = sub.Subscribe(ctx, *eventType, *durable, func(_ context.Context, ev events.Event) error {
		printEvent(os.Stdout, ev)
		return nil
	})
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	<-ctx.Done()
}

func printEvent(w io.Writer, ev events.Event) {
	color.New(color.FgHiBlack).Fprintf(w, "%s ", ev.Timestamp().Format("15:04:05.000"))
	typeColor := color.New(color.FgGreen, color.Bold)
	if ev.EventType() == events.TypeFeedbackSubmitted {
		typeColor = color.New(color.FgMagenta, color.Bold)
	}
	typeColor.Fprintf(w, "%s", ev.EventType())

	payload := ev.Payload()
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, " %s=%v", k, payload[k])
	}
	fmt.Fprintln(w)
}
