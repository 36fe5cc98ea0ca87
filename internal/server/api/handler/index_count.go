package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/kbdviz/kbdviz/apitypes"
	"github.com/kbdviz/kbdviz/compose"
	"github.com/kbdviz/kbdviz/internal/server/api"
)

// IndexCount returns the number of base letters of the published index.
func IndexCount(h *compose.Holder) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		idx := h.Load()
		b, err := json.Marshal(apitypes.CountResponse{Layout: idx.Layout(), Letters: idx.Count()})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
