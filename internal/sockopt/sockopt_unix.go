//go:build unix

package sockopt

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// Broadcast is a net.ListenConfig Control hook that sets SO_BROADCAST so the
// socket may send to 255.255.255.255.
func Broadcast(network, address string, c syscall.RawConn) error {
	return setInt(c, unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
}

// ReuseAddr sets SO_REUSEADDR so a restarted server can rebind its port
// right away.
func ReuseAddr(network, address string, c syscall.RawConn) error {
	return setInt(c, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
}

func setInt(c syscall.RawConn, level, opt, value int) error {
	var serr error
	if err := c.Control(func(fd uintptr) {
		serr = unix.SetsockoptInt(int(fd), level, opt, value)
	}); err != nil {
		return err
	}
	return serr
}
