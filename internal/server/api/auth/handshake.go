package auth

import (
	"bufio"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/kbdviz/kbdviz/apitypes"
	apierror "github.com/kbdviz/kbdviz/internal/server/api/error"
)

const (
	HandshakeMagic = "eKB1\x00"
	NonceSize      = 32
	authContext    = "kbdviz-Auth-v1"
	okPrefix       = "OK\x00"
)

// ReadClientNonce reads the 32-byte client nonce. The handshake magic must
// already be consumed.
func ReadClientNonce(r io.Reader) (clientNonce []byte, err error) {
	clientNonce = make([]byte, NonceSize)
	if _, err = io.ReadFull(r, clientNonce); err != nil {
		return nil, fmt.Errorf("read client nonce: %w", err)
	}
	return clientNonce, nil
}

// WriteServerHandshake generates the server nonce and sends "OK\0" + nonce.
func WriteServerHandshake(w io.Writer) (serverNonce []byte, err error) {
	if w == nil {
		return nil, fmt.Errorf("write response: write on nil pointer")
	}
	serverNonce = make([]byte, NonceSize)
	if _, err = rand.Read(serverNonce); err != nil {
		return nil, fmt.Errorf("generate server nonce: %w", err)
	}
	if _, err = w.Write(append([]byte(okPrefix), serverNonce...)); err != nil {
		return nil, fmt.Errorf("write response: %w", err)
	}
	return serverNonce, nil
}

// IsAuthHandshake checks if the next bytes in reader match the handshake magic
func IsAuthHandshake(r *bufio.Reader) (bool, error) {
	b, err := r.Peek(len(HandshakeMagic))
	if err != nil {
		return false, err
	}
	return string(b) == HandshakeMagic, nil
}

func clientMAC(key, clientNonce []byte) []byte {
	mac := hmac.New(sha256.New, key)
	_, _ = mac.Write([]byte(authContext))
	_, _ = mac.Write(clientNonce)
	return mac.Sum(nil)
}

// HandleAuthHandshake performs the authentication handshake from either side.
// The client sends magic + nonce + HMAC(key, nonce) and reads "OK\0" + the
// server nonce; the server verifies the HMAC and answers.
func HandleAuthHandshake(r *bufio.Reader, w io.Writer, key []byte, isClient bool) (clientNonce, serverNonce []byte, err error) {
	if r == nil {
		return nil, nil, fmt.Errorf("handshake: nil reader")
	}
	if len(key) == 0 {
		return nil, nil, fmt.Errorf("handshake: missing key")
	}
	if isClient {
		return clientHandshake(r, w, key)
	}

	if _, err = r.Discard(len(HandshakeMagic)); err != nil {
		return nil, nil, fmt.Errorf("discard handshake magic: %w", err)
	}
	clientNonce, err = ReadClientNonce(r)
	if err != nil {
		return nil, nil, err
	}
	clientAuth := make([]byte, sha256.Size)
	if _, err := io.ReadFull(r, clientAuth); err != nil {
		return nil, nil, fmt.Errorf("read client auth: %w", err)
	}
	if !hmac.Equal(clientAuth, clientMAC(key, clientNonce)) {
		return nil, nil, apierror.ErrUnauthorized("invalid password")
	}
	serverNonce, err = WriteServerHandshake(w)
	if err != nil {
		return nil, nil, err
	}
	return clientNonce, serverNonce, nil
}

func clientHandshake(r *bufio.Reader, w io.Writer, key []byte) (clientNonce, serverNonce []byte, err error) {
	if w == nil {
		return nil, nil, fmt.Errorf("handshake: nil writer")
	}
	clientNonce = make([]byte, NonceSize)
	if _, err := rand.Read(clientNonce); err != nil {
		return nil, nil, fmt.Errorf("generate client nonce: %w", err)
	}

	msg := append([]byte(HandshakeMagic), clientNonce...)
	msg = append(msg, clientMAC(key, clientNonce)...)
	if _, err := w.Write(msg); err != nil {
		return nil, nil, fmt.Errorf("write handshake: %w", err)
	}

	respPrefix := make([]byte, len(okPrefix))
	if _, err := io.ReadFull(r, respPrefix); err != nil {
		return nil, nil, fmt.Errorf("read handshake response: %w", err)
	}
	if string(respPrefix) != okPrefix {
		rest, _ := io.ReadAll(r)
		line := strings.TrimSuffix(string(append(respPrefix, rest...)), "\n")

		var apiErr apitypes.ApiError
		if err := json.Unmarshal([]byte(line), &apiErr); err == nil && (apiErr.Status != 0 || apiErr.Title != "") {
			return nil, nil, apiErr
		}
		return nil, nil, fmt.Errorf("invalid handshake response from server: %s", line)
	}

	serverNonce = make([]byte, NonceSize)
	if _, err := io.ReadFull(r, serverNonce); err != nil {
		return nil, nil, fmt.Errorf("read server nonce: %w", err)
	}
	return clientNonce, serverNonce, nil
}

// Accept runs the server side of the handshake on conn, reading through r,
// and returns the encrypted connection. The returned reader must be used for
// subsequent reads since r may hold buffered ciphertext.
func Accept(conn net.Conn, r *bufio.Reader, key []byte) (net.Conn, *bufio.Reader, error) {
	clientNonce, serverNonce, err := HandleAuthHandshake(r, conn, key, false)
	if err != nil {
		return nil, nil, err
	}
	secure, err := WrapConn(&bufferedConn{Conn: conn, r: r}, DeriveSessionKey(key, serverNonce, clientNonce), RoleServer)
	if err != nil {
		return nil, nil, err
	}
	return secure, bufio.NewReader(secure), nil
}

// Dial runs the client side of the handshake and returns the encrypted
// connection.
func Dial(conn net.Conn, key []byte) (net.Conn, error) {
	r := bufio.NewReader(conn)
	clientNonce, serverNonce, err := HandleAuthHandshake(r, conn, key, true)
	if err != nil {
		return nil, err
	}
	secure, err := WrapConn(&bufferedConn{Conn: conn, r: r}, DeriveSessionKey(key, serverNonce, clientNonce), RoleClient)
	if err != nil {
		return nil, err
	}
	return secure, nil
}

// bufferedConn reads through a bufio.Reader that may already hold bytes
// received after the handshake.
type bufferedConn struct {
	net.Conn
	r *bufio.Reader
}

func (c *bufferedConn) Read(p []byte) (int, error) { return c.r.Read(p) }
