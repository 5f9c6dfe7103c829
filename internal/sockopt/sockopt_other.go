//go:build !unix

package sockopt

import "syscall"

// The Go runtime already enables SO_BROADCAST on datagram sockets here.
func Broadcast(network, address string, c syscall.RawConn) error { return nil }

func ReuseAddr(network, address string, c syscall.RawConn) error { return nil }
