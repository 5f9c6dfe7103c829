// Package discovery advertises and finds directory servers over mDNS, so a
// client can reach a server by unicast where broadcast is filtered.
package discovery

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/hashicorp/mdns"
)

const ServiceType = "_emergency._udp"

var ErrNotFound = errors.New("no directory server found")

// Advertise announces a directory server listening on port. Call Shutdown
// on the returned server to withdraw it.
func Advertise(instance string, port int) (*mdns.Server, error) {
	svc, err := mdns.NewMDNSService(instance, ServiceType, "", "", port, nil, []string{"catalog=emergency"})
	if err != nil {
		return nil, fmt.Errorf("failed to describe mdns service: %w", err)
	}
	srv, err := mdns.NewServer(&mdns.Config{Zone: svc})
	if err != nil {
		return nil, fmt.Errorf("failed to start mdns responder: %w", err)
	}
	return srv, nil
}

// Resolve waits up to timeout for a directory server to answer an mDNS
// query and returns the first IPv4 address seen.
func Resolve(timeout time.Duration) (*net.UDPAddr, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true

	errc := make(chan error, 1)
	go func() {
		errc <- mdns.Query(params)
		close(entries)
	}()

	var found *net.UDPAddr
	for e := range entries {
		if found != nil {
			continue
		}
		if addr, ok := entryAddr(e); ok {
			found = addr
		}
	}

	if err := <-errc; err != nil && found == nil {
		return nil, fmt.Errorf("mdns query failed: %w", err)
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func entryAddr(e *mdns.ServiceEntry) (*net.UDPAddr, bool) {
	if e == nil || e.Port <= 0 {
		return nil, false
	}
	ip := e.AddrV4
	if ip == nil {
		ip = e.Addr.To4()
	}
	if ip == nil {
		return nil, false
	}
	return &net.UDPAddr{IP: ip, Port: e.Port}, true
}
