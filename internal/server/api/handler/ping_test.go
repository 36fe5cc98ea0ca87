package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbdviz/kbdviz/apiclient"
	"github.com/kbdviz/kbdviz/internal/server/api"
	"github.com/kbdviz/kbdviz/internal/server/api/handler"
	th "github.com/kbdviz/kbdviz/internal/testing"
	"github.com/kbdviz/kbdviz/internal/version"
)

func TestPing(t *testing.T) {
	addr, done := th.StartAPIServer(t, func(r *api.Router, apiSrv *api.Server) {
		r.Register("ping", handler.Ping())
	})
	defer done()

	resp, err := apiclient.New(addr).Ping()
	require.NoError(t, err)
	assert.Equal(t, "kbdviz", resp.Server)
	assert.Equal(t, version.String(), resp.Version)
}
