// internal/device/udp/transmit.go
package udp

import (
	"net"
)

// ListenFunc opens the unconnected datagram socket used for sending.
type ListenFunc func() (net.PacketConn, error)

// ListenUDP is the default ListenFunc: an ephemeral local port on all interfaces.
func ListenUDP() (net.PacketConn, error) {
	return net.ListenPacket("udp", ":0")
}

// Transmitter owns one socket and one resolved destination.
// Sends are single datagrams: no ack, no chunking, no retry. Payloads
// larger than the path MTU are left to the network to drop.
type Transmitter struct {
	conn net.PacketConn
	dest *net.UDPAddr
}

// NewTransmitter takes ownership of conn.
func NewTransmitter(conn net.PacketConn, ip net.IP, port int) *Transmitter {
	return &Transmitter{
		conn: conn,
		dest: &net.UDPAddr{IP: ip, Port: port},
	}
}

// Send writes one datagram to the destination.
func (t *Transmitter) Send(datagram []byte) error {
	if t == nil || t.conn == nil {
		return net.ErrClosed
	}
	_, err := t.conn.WriteTo(datagram, t.dest)
	return err
}

// Destination returns a copy of the resolved destination.
func (t *Transmitter) Destination() *net.UDPAddr {
	if t == nil || t.dest == nil {
		return nil
	}
	d := *t.dest
	d.IP = append(net.IP(nil), t.dest.IP...)
	return &d
}

// Close releases the socket. Safe to call more than once.
func (t *Transmitter) Close() error {
	if t == nil || t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}
