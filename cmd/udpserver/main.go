package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/aadiG17/Emergency-Server-Client-Communication-System/internal/discovery"
	"github.com/aadiG17/Emergency-Server-Client-Communication-System/internal/server"
)

const defaultInstance = "emergency-directory"

var (
	addr   string
	poll   time.Duration
	advert bool
	debug  bool
)

func main() {
	pflag.StringVar(&addr, "addr", server.DefaultAddr, "address to listen on")
	pflag.DurationVar(&poll, "poll", server.DefaultPollInterval, "how long each readiness wait lasts")
	pflag.BoolVar(&advert, "mdns", false, "advertise the server over mDNS")
	pflag.BoolVar(&debug, "debug", false, "enable debug logging")
	pflag.Parse()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := server.Listen(ctx, server.Config{
		Addr:         addr,
		PollInterval: poll,
		Logger:       logger,
	})
	if err != nil {
		logger.Error("Server setup failed", "error", err)
		os.Exit(1)
	}

	port := srv.LocalAddr().(*net.UDPAddr).Port
	logger.Info("Emergency server started, waiting for client requests", "addr", srv.LocalAddr(), "port", port)

	if advert {
		host, err := os.Hostname()
		if err != nil {
			logger.Warn("Could not read hostname, using default mDNS instance name", "error", err)
			host = defaultInstance
		}
		mdnsSrv, err := discovery.Advertise(host, port)
		if err != nil {
			logger.Warn("mDNS advertisement unavailable", "error", err)
		} else {
			defer mdnsSrv.Shutdown()
			logger.Info("Advertising over mDNS", "service", discovery.ServiceType)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Serve)
	g.Go(func() error {
		<-gctx.Done()
		return srv.Close()
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("Server gracefully stopped")
}
