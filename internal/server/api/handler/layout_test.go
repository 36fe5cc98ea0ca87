package handler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbdviz/kbdviz/apiclient"
	"github.com/kbdviz/kbdviz/compose"
	"github.com/kbdviz/kbdviz/internal/server/api"
	"github.com/kbdviz/kbdviz/internal/server/api/handler"
	th "github.com/kbdviz/kbdviz/internal/testing"
	"github.com/kbdviz/kbdviz/layout"
)

func TestLayoutInfo(t *testing.T) {
	h := testHolder(t)
	addr, done := th.StartAPIServer(t, func(r *api.Router, apiSrv *api.Server) {
		r.Register("layout/info", handler.LayoutInfo(h, "builtin:test"))
	})
	defer done()

	info, err := apiclient.New(addr).LayoutInfo()
	require.NoError(t, err)
	assert.Equal(t, "test", info.Layout)
	assert.Equal(t, "builtin:test", info.Source)
	assert.Equal(t, 2, info.Keys)
	assert.Equal(t, 5, info.Letters)
	assert.Equal(t, 6, info.Entries)
	assert.Equal(t, 1, info.DirectEntries)
	assert.Equal(t, 1, info.DeadKeys)
	assert.Equal(t, 5, info.DeadKeyEntries)
	assert.Equal(t, uint64(1), info.Builds)
	assert.Equal(t, uint64(0), info.Failures)
	require.NotNil(t, info.LastBuild)
	assert.False(t, info.LastBuild.IsZero())
}

func TestLayoutReload(t *testing.T) {
	us, err := layout.Builtin("us-altgr-intl")
	require.NoError(t, err)

	tests := []struct {
		name       string
		reload     func(h *compose.Holder) handler.ReloadFunc
		wantErr    string
		wantLayout string
	}{
		{
			name: "swaps index",
			reload: func(h *compose.Holder) handler.ReloadFunc {
				return func(ctx context.Context) (compose.Stats, error) { return h.Rebuild(us) }
			},
			wantLayout: "us-altgr-intl",
		},
		{
			name: "build failure keeps index",
			reload: func(h *compose.Holder) handler.ReloadFunc {
				return func(ctx context.Context) (compose.Stats, error) { return h.Rebuild(nil) }
			},
			wantErr:    "409 Conflict: layout rejected, previous index kept: build compose index: no layout source",
			wantLayout: "test",
		},
		{
			name:       "no reloader",
			reload:     func(h *compose.Holder) handler.ReloadFunc { return nil },
			wantErr:    "409 Conflict: layout source cannot be reloaded",
			wantLayout: "test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHolder(t)
			addr, done := th.StartAPIServer(t, func(r *api.Router, apiSrv *api.Server) {
				r.Register("layout/reload", handler.LayoutReload(h, tt.reload(h)))
			})
			defer done()

			resp, err := apiclient.New(addr).Reload()
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantLayout, resp.Layout)
				assert.Equal(t, h.Load().Count(), resp.Letters)
			}
			assert.Equal(t, tt.wantLayout, h.Load().Layout())
		})
	}
}
