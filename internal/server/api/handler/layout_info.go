package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/kbdviz/kbdviz/apitypes"
	"github.com/kbdviz/kbdviz/compose"
	"github.com/kbdviz/kbdviz/internal/server/api"
)

// LayoutInfo reports the published index together with the holder's build
// counters. source describes where the layout was loaded from.
func LayoutInfo(h *compose.Holder, source string) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		idx := h.Load()
		st := idx.Stats()
		out := apitypes.LayoutInfoResponse{
			Layout:         idx.Layout(),
			Source:         source,
			Keys:           st.Keys,
			Letters:        idx.Count(),
			Entries:        st.Entries,
			DirectEntries:  st.DirectEntries,
			DeadKeys:       st.DeadKeys,
			DeadKeyEntries: st.DeadKeyEntries,
			Builds:         h.Builds(),
			Failures:       h.Failures(),
		}
		if last := h.LastBuild(); !last.IsZero() {
			out.LastBuild = &last
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
