package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbdviz/kbdviz/apiclient"
	"github.com/kbdviz/kbdviz/internal/log"
	"github.com/kbdviz/kbdviz/internal/server/api"
)

const tinyLayoutJSON = `{"name":"tiny","keys":[{"code":26,"name":"AD03","symbols":["e","E","eacute"]}]}`

func startServe(t *testing.T, s *Serve) (addr string) {
	t.Helper()
	ctx, cancel := context.WithCancel(t.Context())
	ready := make(chan *api.Server, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.StartServer(ctx, discard(), log.NewRaw(nil), func(srv *api.Server) { ready <- srv })
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(3 * time.Second):
			t.Error("serve did not stop")
		}
	})

	select {
	case srv := <-ready:
		return srv.Addr()
	case err := <-errCh:
		t.Fatalf("serve failed: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not start")
	}
	return ""
}

func TestServe(t *testing.T) {
	path := writeLayout(t, smallLayoutJSON)
	addr := startServe(t, &Serve{
		LayoutOptions:   LayoutOptions{Layout: path},
		ApiServerConfig: api.ServerConfig{Addr: "127.0.0.1:0", ConnectionTimeout: time.Second},
		Watch:           true,
	})
	c := apiclient.New(addr)

	count, err := c.Count()
	require.NoError(t, err)
	assert.Equal(t, "small", count.Layout)
	assert.Equal(t, 12, count.Letters)

	variants, err := c.Variants('a')
	require.NoError(t, err)
	require.Len(t, variants.Variants, 3)
	assert.Equal(t, "AltGr-a", variants.Variants[0].KeySequence)

	info, err := c.LayoutInfo()
	require.NoError(t, err)
	assert.Equal(t, "file:"+path, info.Source)
	assert.Equal(t, uint64(1), info.Builds)

	t.Run("watch swaps index", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte(tinyLayoutJSON), 0o644))
		assert.Eventually(t, func() bool {
			count, err := c.Count()
			return err == nil && count.Layout == "tiny" && count.Letters == 1
		}, 5*time.Second, 20*time.Millisecond)
	})

	t.Run("broken layout keeps index", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte(`{"name":"broken","keys":[]}`), 0o644))
		_, err := c.Reload()
		assert.ErrorContains(t, err, "500 Internal Server Error: reload layout:")

		count, err := c.Count()
		require.NoError(t, err)
		assert.Equal(t, "tiny", count.Layout)
	})

	t.Run("reload", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte(smallLayoutJSON), 0o644))
		resp, err := c.Reload()
		require.NoError(t, err)
		assert.Equal(t, "small", resp.Layout)
		assert.Equal(t, 12, resp.Letters)
	})
}

func TestServeStartsWithBrokenLayout(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "schema violation", content: `{"name":"x","keys":[]}`},
		{name: "not json", content: `{"name":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeLayout(t, tt.content)
			addr := startServe(t, &Serve{
				LayoutOptions:   LayoutOptions{Layout: path},
				ApiServerConfig: api.ServerConfig{Addr: "127.0.0.1:0", ConnectionTimeout: time.Second},
				Watch:           true,
			})
			c := apiclient.New(addr)

			count, err := c.Count()
			require.NoError(t, err)
			assert.Equal(t, 0, count.Letters)
			assert.Empty(t, count.Layout)

			variants, err := c.Variants('e')
			require.NoError(t, err)
			assert.Empty(t, variants.Variants)

			require.NoError(t, os.WriteFile(path, []byte(tinyLayoutJSON), 0o644))
			assert.Eventually(t, func() bool {
				count, err := c.Count()
				return err == nil && count.Layout == "tiny" && count.Letters == 1
			}, 5*time.Second, 20*time.Millisecond)

			variants, err = c.Variants('e')
			require.NoError(t, err)
			require.Len(t, variants.Variants, 1)
			assert.Equal(t, "é", variants.Variants[0].Character)
		})
	}
}

func TestServeBuiltinWithPassword(t *testing.T) {
	addr := startServe(t, &Serve{
		LayoutOptions:   LayoutOptions{Builtin: "us-altgr-intl"},
		ApiServerConfig: api.ServerConfig{Addr: "127.0.0.1:0", Password: "letmein"},
		Auth:            true,
	})

	_, err := apiclient.New(addr).Count()
	assert.EqualError(t, err, "401 Unauthorized: authentication required")

	c := apiclient.NewWithPassword(addr, "letmein")
	variants, err := c.Variants('e')
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(variants.Variants), 4)
	assert.Equal(t, "€", variants.Variants[0].Character)
	assert.Equal(t, "AltGr-5", variants.Variants[0].KeySequence)

	_, err = c.Reload()
	assert.EqualError(t, err, "409 Conflict: layout source cannot be reloaded")
}

func TestServeGeneratesKey(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("AppData", os.Getenv("XDG_CONFIG_HOME"))

	pwd, err := loadOrCreateKey(discard())
	require.NoError(t, err)
	assert.Len(t, pwd, 16)

	dir := os.Getenv("XDG_CONFIG_HOME")
	data, err := os.ReadFile(filepath.Join(dir, "kbdviz", keyFileName))
	require.NoError(t, err)
	assert.Equal(t, pwd, string(data))

	again, err := loadOrCreateKey(discard())
	require.NoError(t, err)
	assert.Equal(t, pwd, again)
}

func TestServeRequiresAddr(t *testing.T) {
	s := &Serve{LayoutOptions: LayoutOptions{Builtin: "us"}}
	err := s.StartServer(t.Context(), discard(), log.NewRaw(nil), nil)
	assert.EqualError(t, err, "API server address must be set (default :3242)")
}
