package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/aadiG17/Emergency-Server-Client-Communication-System/internal/catalog"
	"github.com/aadiG17/Emergency-Server-Client-Communication-System/internal/client"
	"github.com/aadiG17/Emergency-Server-Client-Communication-System/internal/discovery"
	"github.com/aadiG17/Emergency-Server-Client-Communication-System/internal/menu"
)

var (
	addr     string
	interval time.Duration
	useMDNS  bool
	debug    bool
)

func main() {
	pflag.StringVar(&addr, "addr", client.DefaultTarget, "address queries are sent to")
	pflag.DurationVar(&interval, "interval", client.DefaultRetryPolicy.Interval, "resend interval while waiting for a reply")
	pflag.BoolVar(&useMDNS, "mdns", false, "look the server up over mDNS before falling back to broadcast")
	pflag.BoolVar(&debug, "debug", false, "log every send and receive")
	pflag.Parse()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	target := addr
	if useMDNS {
		found, err := discovery.Resolve(2 * time.Second)
		switch {
		case err == nil:
			target = found.String()
			logger.Info("Found directory server over mDNS", "addr", target)
		case errors.Is(err, discovery.ErrNotFound):
			logger.Warn("No server answered over mDNS, using broadcast", "addr", target)
		default:
			logger.Warn("mDNS lookup failed, using broadcast", "error", err)
		}
	}

	c, err := client.New(client.Config{
		Target: target,
		Policy: client.RetryPolicy{Interval: interval},
		Logger: logger,
	})
	if err != nil {
		logger.Error("Invalid client configuration", "error", err)
		os.Exit(1)
	}

	logger.Debug("Client ready", "target", c.Target(), "interval", interval)

	shell := menu.New(os.Stdin, os.Stdout, catalog.Default().Services(), c)
	if err := shell.Run(context.Background()); err != nil {
		logger.Error("Client stopped", "error", err)
		os.Exit(1)
	}
}
