package response

import (
	"fmt"

	"github.com/aadiG17/Emergency-Server-Client-Communication-System/internal/catalog"
)

// Invalid is sent back for any request that does not name a known service.
const Invalid = "Invalid request. Service not available."

// MaxDatagram bounds both request and reply payloads.
const MaxDatagram = 1024

// Format renders the success reply for s.
func Format(s catalog.Service) string {
	return truncate(fmt.Sprintf("The %s is %s", s.Name, s.Number))
}

// For looks service up in c and returns the reply text.
func For(c *catalog.Catalog, service string) string {
	s, ok := c.Lookup(service)
	if !ok {
		return Invalid
	}
	return Format(s)
}

func truncate(s string) string {
	if len(s) > MaxDatagram {
		return s[:MaxDatagram]
	}
	return s
}
