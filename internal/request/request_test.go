package request

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDatagram(t *testing.T) {
	src := &net.UDPAddr{IP: net.IPv4(192, 168, 1, 20), Port: 40000}

	t.Run("Payload is used verbatim", func(t *testing.T) {
		r := FromDatagram([]byte("Ambulance Number"), src)
		require.NotNil(t, r)
		assert.Equal(t, "Ambulance Number", r.Service)
		assert.Equal(t, src, r.Source)
		assert.False(t, r.Broadcast)
	})

	t.Run("Whitespace is not trimmed", func(t *testing.T) {
		r := FromDatagram([]byte(" Ambulance Number\n"), src)
		assert.Equal(t, " Ambulance Number\n", r.Service)
	})

	t.Run("Embedded null bytes are kept", func(t *testing.T) {
		r := FromDatagram([]byte("Ambulance\x00Number"), src)
		assert.Len(t, r.Service, len("Ambulance Number"))
	})

	t.Run("Empty datagram", func(t *testing.T) {
		r := FromDatagram(nil, src)
		assert.Equal(t, "", r.Service)
	})

	t.Run("Payload buffer can be reused", func(t *testing.T) {
		buf := []byte("Blood Bank Number")
		r := FromDatagram(buf, src)
		copy(buf, "XXXXX")
		assert.Equal(t, "Blood Bank Number", r.Service)
	})
}

func TestString(t *testing.T) {
	src := &net.UDPAddr{IP: net.IPv4(10, 0, 0, 7), Port: 5000}

	t.Run("Printable request", func(t *testing.T) {
		r := FromDatagram([]byte("Food Delivery Number"), src)
		assert.True(t, r.Printable())
		assert.Equal(t, "Food Delivery Number from client 10.0.0.7:5000", r.String())
	})

	t.Run("Binary request is hex encoded", func(t *testing.T) {
		r := FromDatagram([]byte{0xff, 0xfe}, src)
		assert.False(t, r.Printable())
		assert.Equal(t, "fffe from client 10.0.0.7:5000", r.String())
	})

	t.Run("Missing source", func(t *testing.T) {
		r := FromDatagram([]byte("x"), nil)
		assert.Equal(t, "x from client <unknown>", r.String())
	})
}
