package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync/atomic"
	"time"

	"golang.org/x/net/ipv4"

	"github.com/aadiG17/Emergency-Server-Client-Communication-System/internal/catalog"
	"github.com/aadiG17/Emergency-Server-Client-Communication-System/internal/request"
	"github.com/aadiG17/Emergency-Server-Client-Communication-System/internal/response"
	"github.com/aadiG17/Emergency-Server-Client-Communication-System/internal/sockopt"
)

const (
	DefaultAddr         = "0.0.0.0:5555"
	DefaultPollInterval = time.Second
)

// Config controls where the server listens and what it answers with.
// Zero values fall back to the defaults above and the fixed catalog.
type Config struct {
	Addr         string
	PollInterval time.Duration
	Catalog      *catalog.Catalog
	Logger       *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.Catalog == nil {
		c.Catalog = catalog.Default()
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Server answers directory queries, one datagram at a time.
type Server struct {
	conn    *ipv4.PacketConn
	local   net.Addr
	catalog *catalog.Catalog
	poll    time.Duration
	log     *slog.Logger

	closed atomic.Bool
	served atomic.Uint64
}

// Listen binds the server socket. It does not start serving.
func Listen(ctx context.Context, cfg Config) (*Server, error) {
	cfg = cfg.withDefaults()

	lc := net.ListenConfig{Control: sockopt.Chain(sockopt.ReuseAddr, sockopt.Broadcast)}
	pc, err := lc.ListenPacket(ctx, "udp4", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("binding failed on %s: %w", cfg.Addr, err)
	}

	conn := ipv4.NewPacketConn(pc)
	if err := conn.SetControlMessage(ipv4.FlagDst, true); err != nil {
		cfg.Logger.Warn("destination address reporting unavailable", "error", err)
	}
	cfg.Logger.Debug("Catalog loaded", "services", cfg.Catalog.Len())

	return &Server{
		conn:    conn,
		local:   pc.LocalAddr(),
		catalog: cfg.Catalog,
		poll:    cfg.PollInterval,
		log:     cfg.Logger,
	}, nil
}

// LocalAddr returns the bound address.
func (s *Server) LocalAddr() net.Addr {
	return s.local
}

// Served returns how many replies have been sent.
func (s *Server) Served() uint64 {
	return s.served.Load()
}

// Close stops Serve and releases the socket. It is safe to call more than once.
func (s *Server) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.conn.Close()
}

// Serve runs the poll loop until Close is called. Errors on a single
// datagram are logged and the loop carries on.
func (s *Server) Serve() error {
	buf := make([]byte, response.MaxDatagram)
	for {
		if err := s.conn.SetReadDeadline(time.Now().Add(s.poll)); err != nil {
			if s.closed.Load() {
				return nil
			}
			return fmt.Errorf("failed to arm poll timeout: %w", err)
		}

		n, cm, src, err := s.conn.ReadFrom(buf)
		if err != nil {
			switch {
			case s.closed.Load():
				return nil
			case isTimeout(err):
				s.log.Info("No data available to read; server is still responsive.")
			case errors.Is(err, net.ErrClosed):
				return err
			default:
				s.log.Error("Error receiving data", "error", err)
			}
			continue
		}

		s.handle(buf[:n], cm, src)
	}
}

func (s *Server) handle(payload []byte, cm *ipv4.ControlMessage, src net.Addr) {
	req := request.FromDatagram(payload, src)
	req.Broadcast = cm != nil && cm.Dst.Equal(net.IPv4bcast)
	s.log.Info("Received request", "request", req.String(), "broadcast", req.Broadcast)

	reply := response.For(s.catalog, req.Service)
	if _, err := s.conn.WriteTo([]byte(reply), nil, src); err != nil {
		s.log.Error("Error sending reply", "client", src, "error", err)
		return
	}
	s.served.Add(1)
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
