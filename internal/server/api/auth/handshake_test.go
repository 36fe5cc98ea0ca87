package auth_test

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbdviz/kbdviz/apitypes"
	"github.com/kbdviz/kbdviz/internal/server/api/auth"
)

func TestReadClientNonce(t *testing.T) {
	validNonce := make([]byte, 32)
	for i := range validNonce {
		validNonce[i] = byte(i)
	}

	testCases := []struct {
		name          string
		input         []byte
		expectedNonce []byte
		expectedErr   error
	}{
		{name: "Valid nonce", input: validNonce, expectedNonce: validNonce},
		{name: "Short input", input: []byte{1, 2, 3}, expectedErr: fmt.Errorf("read client nonce: unexpected EOF")},
		{name: "Empty input", input: []byte{}, expectedErr: fmt.Errorf("read client nonce: EOF")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			nonce, err := auth.ReadClientNonce(bytes.NewBuffer(tc.input))
			if tc.expectedErr != nil {
				assert.EqualError(t, err, tc.expectedErr.Error())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectedNonce, nonce)
		})
	}
}

func TestWriteServerHandshake(t *testing.T) {
	testCases := []struct {
		name        string
		writer      io.Writer
		expectedErr error
	}{
		{name: "Success", writer: bytes.NewBuffer(nil)},
		{name: "Err no writer", writer: nil, expectedErr: fmt.Errorf("write response: write on nil pointer")},
		{
			name: "Err closed writer",
			writer: func() io.Writer {
				_, w := io.Pipe()
				w.Close()
				return w
			}(),
			expectedErr: fmt.Errorf("write response: io: read/write on closed pipe"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			serverNonce, err := auth.WriteServerHandshake(tc.writer)
			if tc.expectedErr != nil {
				assert.EqualError(t, err, tc.expectedErr.Error())
				return
			}
			assert.NoError(t, err)
			assert.Len(t, serverNonce, 32)

			resp := tc.writer.(*bytes.Buffer).Bytes()
			assert.Equal(t, "OK\x00", string(resp[:3]))
			assert.Equal(t, serverNonce, resp[3:])
		})
	}
}

func TestIsAuthHandshake(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected bool
		wantErr  bool
	}{
		{name: "magic", input: auth.HandshakeMagic + "rest", expected: true},
		{name: "plain request", input: "variants e\x00", expected: false},
		{name: "too short", input: "eK", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := auth.IsAuthHandshake(bufio.NewReader(bytes.NewBufferString(tc.input)))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, ok)
		})
	}
}

func TestHandshakeRoundTrip(t *testing.T) {
	key, err := auth.DeriveKey("secret")
	require.NoError(t, err)

	t.Run("matching keys", func(t *testing.T) {
		clientConn, serverConn := tcpPair(t)
		done := make(chan error, 1)
		go func() {
			secure, r, err := auth.Accept(serverConn, bufio.NewReader(serverConn), key)
			if err != nil {
				done <- err
				return
			}
			line, err := r.ReadString('\x00')
			if err != nil {
				done <- err
				return
			}
			_, err = secure.Write([]byte("echo:" + line))
			done <- err
		}()

		secure, err := auth.Dial(clientConn, key)
		require.NoError(t, err)
		_, err = secure.Write([]byte("index/count\x00"))
		require.NoError(t, err)

		buf := make([]byte, 64)
		n, err := secure.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, "echo:index/count\x00", string(buf[:n]))
		assert.NoError(t, <-done)
	})

	t.Run("wrong password", func(t *testing.T) {
		clientConn, serverConn := tcpPair(t)
		wrong, err := auth.DeriveKey("guess")
		require.NoError(t, err)

		go func() {
			_, _, err := auth.Accept(serverConn, bufio.NewReader(serverConn), key)
			var apiErr apitypes.ApiError
			if errors.As(err, &apiErr) {
				_, _ = serverConn.Write([]byte(`{"status":401,"title":"Unauthorized","detail":"invalid password"}` + "\n"))
			}
			_ = serverConn.Close()
		}()

		_, err = auth.Dial(clientConn, wrong)
		assert.EqualError(t, err, "401 Unauthorized: invalid password")
	})

	t.Run("missing key", func(t *testing.T) {
		_, _, err := auth.HandleAuthHandshake(bufio.NewReader(bytes.NewReader(nil)), io.Discard, nil, false)
		assert.EqualError(t, err, "handshake: missing key")
	})
}
