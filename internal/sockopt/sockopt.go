// Package sockopt holds the socket options the directory needs that the net
// package does not expose directly.
package sockopt

import "syscall"

// Chain runs each control hook in order and stops at the first error.
func Chain(hooks ...func(network, address string, c syscall.RawConn) error) func(network, address string, c syscall.RawConn) error {
	return func(network, address string, c syscall.RawConn) error {
		for _, h := range hooks {
			if err := h(network, address, c); err != nil {
				return err
			}
		}
		return nil
	}
}
