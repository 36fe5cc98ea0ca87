package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kbdviz/kbdviz/compose"
	"github.com/kbdviz/kbdviz/internal/server/api"
	"github.com/kbdviz/kbdviz/internal/server/api/handler"
	th "github.com/kbdviz/kbdviz/internal/testing"
)

func TestIndexCount(t *testing.T) {
	tests := []struct {
		name             string
		holder           func(t *testing.T) *compose.Holder
		expectedResponse string
	}{
		{
			name:             "empty index",
			holder:           func(t *testing.T) *compose.Holder { return compose.NewHolder() },
			expectedResponse: `{"layout":"","letters":0}`,
		},
		{
			name:             "built index",
			holder:           testHolder,
			expectedResponse: `{"layout":"test","letters":5}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.holder(t)
			addr, done := th.StartAPIServer(t, func(r *api.Router, apiSrv *api.Server) {
				r.Register("index/count", handler.IndexCount(h))
			})
			defer done()

			assert.Equal(t, tt.expectedResponse, th.ExecCmd(t, addr, "index/count"))
		})
	}
}
