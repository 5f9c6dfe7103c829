package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/aadiG17/Emergency-Server-Client-Communication-System/internal/response"
	"github.com/aadiG17/Emergency-Server-Client-Communication-System/internal/sockopt"
)

// DefaultTarget is the limited broadcast address on the directory port.
const DefaultTarget = "255.255.255.255:5555"

// ErrNoReply is returned when a bounded retry policy runs out of attempts.
var ErrNoReply = errors.New("no reply from server")

// RetryPolicy decides how often a query is resent. MaxAttempts of zero
// means resend forever.
type RetryPolicy struct {
	Interval    time.Duration
	MaxAttempts int
}

// DefaultRetryPolicy resends every 100ms until a reply arrives.
var DefaultRetryPolicy = RetryPolicy{Interval: 100 * time.Millisecond}

type Config struct {
	Target string
	Policy RetryPolicy
	Logger *slog.Logger
}

// Client sends directory queries and waits for the first reply.
type Client struct {
	target *net.UDPAddr
	policy RetryPolicy
	log    *slog.Logger
	lc     net.ListenConfig
}

func New(cfg Config) (*Client, error) {
	if cfg.Target == "" {
		cfg.Target = DefaultTarget
	}
	if cfg.Policy.Interval <= 0 {
		cfg.Policy.Interval = DefaultRetryPolicy.Interval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	target, err := net.ResolveUDPAddr("udp4", cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", cfg.Target, err)
	}

	return &Client{
		target: target,
		policy: cfg.Policy,
		log:    cfg.Logger,
		lc:     net.ListenConfig{Control: sockopt.Broadcast},
	}, nil
}

// Target returns the address queries are sent to.
func (c *Client) Target() *net.UDPAddr {
	return c.target
}

// Query sends service to the target and returns the first reply. It opens
// a fresh socket for every call and resends on each interval without a
// reply. With the default policy it only returns early when ctx is done.
func (c *Client) Query(ctx context.Context, service string) (string, error) {
	conn, err := c.lc.ListenPacket(context.Background(), "udp4", ":0")
	if err != nil {
		return "", fmt.Errorf("socket creation failed: %w", err)
	}
	defer conn.Close()

	// Wake a pending read as soon as ctx is done.
	stop := context.AfterFunc(ctx, func() {
		conn.SetReadDeadline(time.Now())
	})
	defer stop()

	payload := []byte(service)
	buf := make([]byte, response.MaxDatagram)

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if _, err := conn.WriteTo(payload, c.target); err != nil {
			c.log.Error("Error sending request", "target", c.target, "attempt", attempt, "error", err)
		} else {
			c.log.Debug("Request sent", "service", service, "target", c.target, "attempt", attempt)
		}

		deadline := time.Now().Add(c.policy.Interval)
		reply, err := c.await(ctx, conn, buf, deadline)
		if err == nil {
			return reply, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if !isTimeout(err) {
			c.log.Error("Error receiving data from server", "error", err)
			if err := sleepUntil(ctx, deadline); err != nil {
				return "", err
			}
		}

		if c.policy.MaxAttempts > 0 && attempt >= c.policy.MaxAttempts {
			return "", fmt.Errorf("%w after %d attempts", ErrNoReply, attempt)
		}
	}
}

// await blocks until deadline at most. The deadline overrides any wake-up
// armed by ctx, so ctx is checked again once it is set.
func (c *Client) await(ctx context.Context, conn net.PacketConn, buf []byte, deadline time.Time) (string, error) {
	if err := conn.SetReadDeadline(deadline); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	n, from, err := conn.ReadFrom(buf)
	if err != nil {
		return "", err
	}
	c.log.Debug("Reply received", "from", from, "bytes", n)
	return string(buf[:n]), nil
}

// sleepUntil waits out the rest of a retry interval after a failed read.
func sleepUntil(ctx context.Context, deadline time.Time) error {
	t := time.NewTimer(time.Until(deadline))
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
