package request

import (
	"fmt"
	"net"
	"unicode/utf8"
)

// Request is one query datagram as received by the server.
type Request struct {
	Service   string
	Source    net.Addr
	Broadcast bool
}

// FromDatagram builds a Request from the first n bytes read off the socket.
// The payload is taken as-is: no terminator is expected and nothing is
// trimmed, so "Ambulance Number\n" is a different service than
// "Ambulance Number".
func FromDatagram(payload []byte, src net.Addr) *Request {
	return &Request{
		Service: string(payload),
		Source:  src,
	}
}

// Printable reports whether the service name is valid UTF-8. Anything else
// still gets a reply, it is only logged differently.
func (r *Request) Printable() bool {
	return utf8.ValidString(r.Service)
}

func (r *Request) String() string {
	src := "<unknown>"
	if r.Source != nil {
		src = r.Source.String()
	}
	if !r.Printable() {
		return fmt.Sprintf("%x from client %s", r.Service, src)
	}
	return fmt.Sprintf("%s from client %s", r.Service, src)
}
