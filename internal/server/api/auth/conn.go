package auth

import (
	"crypto/cipher"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
)

// Role tells the two ends of a connection apart. It is mixed into every
// nonce so the directions never share one under the same session key.
type Role byte

const (
	RoleClient Role = 'c'
	RoleServer Role = 's'
)

func (r Role) peer() Role {
	if r == RoleClient {
		return RoleServer
	}
	return RoleClient
}

// Queries and answers are a single short line each.
const maxPacketSize = 64 * 1024

// ErrPacketSize is returned for a packet header outside the accepted size.
var ErrPacketSize = errors.New("encrypted packet size out of range")

// Conn seals every Write into one packet: a uint32 length and the
// chacha20poly1305 ciphertext. Nonces are not sent. Both ends derive them
// from the sender's role and packet counter, so a replayed, dropped or
// reordered packet fails to open.
type Conn struct {
	net.Conn
	aead cipher.AEAD
	role Role

	wmu  sync.Mutex
	sent uint64

	recvd   uint64
	pending []byte
}

// WrapConn encrypts conn with sessionKey, acting as role.
func WrapConn(conn net.Conn, sessionKey []byte, role Role) (*Conn, error) {
	aead, err := chacha20poly1305.New(sessionKey)
	if err != nil {
		return nil, err
	}
	return &Conn{Conn: conn, aead: aead, role: role}, nil
}

func nonceFor(role Role, n uint64) []byte {
	nonce := make([]byte, chacha20poly1305.NonceSize)
	nonce[0] = byte(role)
	binary.BigEndian.PutUint64(nonce[4:], n)
	return nonce
}

func (c *Conn) Write(p []byte) (int, error) {
	if len(p)+chacha20poly1305.Overhead > maxPacketSize {
		return 0, fmt.Errorf("%w: %d bytes", ErrPacketSize, len(p))
	}
	c.wmu.Lock()
	defer c.wmu.Unlock()

	pkt := make([]byte, 4, 4+len(p)+chacha20poly1305.Overhead)
	pkt = c.aead.Seal(pkt, nonceFor(c.role, c.sent), p, nil)
	binary.BigEndian.PutUint32(pkt, uint32(len(pkt)-4))
	if _, err := c.Conn.Write(pkt); err != nil {
		return 0, err
	}
	c.sent++
	return len(p), nil
}

func (c *Conn) Read(p []byte) (int, error) {
	if len(c.pending) == 0 {
		if err := c.readPacket(); err != nil {
			return 0, err
		}
	}
	n := copy(p, c.pending)
	c.pending = c.pending[n:]
	return n, nil
}

func (c *Conn) readPacket() error {
	var hdr [4]byte
	if _, err := io.ReadFull(c.Conn, hdr[:]); err != nil {
		return err
	}
	size := binary.BigEndian.Uint32(hdr[:])
	if size < chacha20poly1305.Overhead || size > maxPacketSize {
		return fmt.Errorf("%w: %d bytes", ErrPacketSize, size)
	}
	ct := make([]byte, size)
	if _, err := io.ReadFull(c.Conn, ct); err != nil {
		return err
	}
	pt, err := c.aead.Open(ct[:0], nonceFor(c.role.peer(), c.recvd), ct, nil)
	if err != nil {
		return err
	}
	c.recvd++
	c.pending = pt
	return nil
}
