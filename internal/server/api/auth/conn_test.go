package auth_test

import (
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/kbdviz/kbdviz/internal/server/api/auth"
)

func tcpPair(t *testing.T) (client, server net.Conn) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	client, err = net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	server, err = ln.Accept()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
		_ = server.Close()
	})
	return client, server
}

func wrapPair(t *testing.T, clientKey, serverKey []byte) (client, server *auth.Conn) {
	t.Helper()
	c, s := tcpPair(t)
	client, err := auth.WrapConn(c, clientKey, auth.RoleClient)
	require.NoError(t, err)
	server, err = auth.WrapConn(s, serverKey, auth.RoleServer)
	require.NoError(t, err)
	return client, server
}

func TestConn(t *testing.T) {
	key, err := auth.DeriveKey("test123")
	require.NoError(t, err)
	other, err := auth.DeriveKey("123test")
	require.NoError(t, err)

	testCases := []struct {
		name        string
		serverKey   []byte
		input       []byte
		expectedErr string
	}{
		{name: "valid read", serverKey: key, input: []byte("variants/e\x00")},
		{name: "differing keys", serverKey: other, input: []byte("x"), expectedErr: "message authentication failed"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, server := wrapPair(t, key, tc.serverKey)

			_, err := client.Write(tc.input)
			require.NoError(t, err)

			buf := make([]byte, len(tc.input))
			_, err = server.Read(buf)
			if tc.expectedErr != "" {
				assert.ErrorContains(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.input, buf)
		})
	}
}

func TestWrapConnBadKey(t *testing.T) {
	c, _ := tcpPair(t)
	_, err := auth.WrapConn(c, []byte{1, 2, 3}, auth.RoleClient)
	assert.ErrorContains(t, err, "bad key length")
}

func TestConnSplitsReads(t *testing.T) {
	key, err := auth.DeriveKey("test123")
	require.NoError(t, err)
	client, server := wrapPair(t, key, key)

	_, err = client.Write([]byte("hello world"))
	require.NoError(t, err)

	buf := make([]byte, 5)
	n, err := server.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
	rest := make([]byte, 16)
	n, err = server.Read(rest)
	require.NoError(t, err)
	assert.Equal(t, " world", string(rest[:n]))
}

func TestConnBothDirections(t *testing.T) {
	key, err := auth.DeriveKey("test123")
	require.NoError(t, err)
	client, server := wrapPair(t, key, key)

	for i, msg := range []string{"ping", "index/count", "layout/info"} {
		_, err := client.Write([]byte(msg))
		require.NoError(t, err)
		buf := make([]byte, 32)
		n, err := server.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, msg, string(buf[:n]), "request %d", i)

		_, err = server.Write([]byte("{}\n"))
		require.NoError(t, err)
		n, err = client.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, "{}\n", string(buf[:n]), "response %d", i)
	}
}

func TestConnRejectsReflectedPacket(t *testing.T) {
	key, err := auth.DeriveKey("test123")
	require.NoError(t, err)
	c, s := tcpPair(t)
	client, err := auth.WrapConn(c, key, auth.RoleClient)
	require.NoError(t, err)

	// Both ends claim the client role, as a packet bounced back to its
	// sender would.
	mirror, err := auth.WrapConn(s, key, auth.RoleClient)
	require.NoError(t, err)

	_, err = client.Write([]byte("ping"))
	require.NoError(t, err)
	_, err = mirror.Read(make([]byte, 8))
	assert.ErrorContains(t, err, "message authentication failed")
}

func TestConnRejectsReplay(t *testing.T) {
	key, err := auth.DeriveKey("test123")
	require.NoError(t, err)
	c, s := tcpPair(t)
	client, err := auth.WrapConn(c, key, auth.RoleClient)
	require.NoError(t, err)
	server, err := auth.WrapConn(s, key, auth.RoleServer)
	require.NoError(t, err)

	// Capture the first packet from the wire and send it twice.
	_, err = client.Write([]byte("ping"))
	require.NoError(t, err)
	pkt := make([]byte, 4+4+chacha20poly1305.Overhead)
	_, err = io.ReadFull(s, pkt)
	require.NoError(t, err)

	go func() {
		_, _ = c.Write(append(append([]byte{}, pkt...), pkt...))
	}()
	buf := make([]byte, 8)
	n, err := server.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf[:n]))
	_, err = server.Read(buf)
	assert.ErrorContains(t, err, "message authentication failed")
}

func TestConnPacketSize(t *testing.T) {
	key, err := auth.DeriveKey("test123")
	require.NoError(t, err)
	client, server := wrapPair(t, key, key)

	_, err = client.Write(make([]byte, 64*1024))
	assert.ErrorIs(t, err, auth.ErrPacketSize)

	c, s := tcpPair(t)
	server, err = auth.WrapConn(s, key, auth.RoleServer)
	require.NoError(t, err)
	_, err = c.Write([]byte{0, 0, 0, 3, 1, 2, 3})
	require.NoError(t, err)
	_, err = server.Read(make([]byte, 8))
	assert.ErrorIs(t, err, auth.ErrPacketSize)
}
