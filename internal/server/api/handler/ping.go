package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/kbdviz/kbdviz/apitypes"
	"github.com/kbdviz/kbdviz/internal/server/api"
	"github.com/kbdviz/kbdviz/internal/version"
)

// Ping identifies the server and its version.
func Ping() api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		b, err := json.Marshal(apitypes.PingResponse{Server: "kbdviz", Version: version.String()})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
