package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/kbdviz/kbdviz/apitypes"
	"github.com/kbdviz/kbdviz/compose"
	"github.com/kbdviz/kbdviz/internal/server/api"
)

// ReloadFunc reloads the layout source and republishes the index.
type ReloadFunc func(ctx context.Context) (compose.Stats, error)

// LayoutReload triggers reload. When the new layout cannot be indexed the
// previous index stays published and the request fails with 409.
func LayoutReload(h *compose.Holder, reload ReloadFunc) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		if reload == nil {
			return api.ErrConflict("layout source cannot be reloaded")
		}
		stats, err := reload(req.Ctx)
		if err != nil {
			if errors.Is(err, compose.ErrBuild) {
				return api.ErrConflict("layout rejected, previous index kept: " + err.Error())
			}
			return api.ErrInternal("reload layout: " + err.Error())
		}
		logger.Info("layout reloaded", "letters", stats.Letters, "entries", stats.Entries)

		b, err := json.Marshal(apitypes.LayoutReloadResponse{
			Layout:  h.Load().Layout(),
			Letters: stats.Letters,
			Entries: stats.Entries,
		})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
