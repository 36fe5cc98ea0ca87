package handler

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/kbdviz/kbdviz/apitypes"
	"github.com/kbdviz/kbdviz/compose"
	"github.com/kbdviz/kbdviz/internal/server/api"
)

// Variants answers "variants/{letter}" and "variants <letter>". Only the
// first character of the letter is looked up.
func Variants(h *compose.Holder) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		letter := req.Params["letter"]
		if letter == "" {
			letter = strings.TrimRight(req.Payload, "\r\n")
		}
		if letter == "" {
			return api.ErrBadRequest("missing letter")
		}

		entries := h.Load().FindVariants(letter)
		out := apitypes.VariantsResponse{
			Letter:   letter,
			Variants: make([]apitypes.Variant, 0, len(entries)),
		}
		for _, e := range entries {
			out.Variants = append(out.Variants, toVariant(e))
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}

func toVariant(e compose.Entry) apitypes.Variant {
	v := apitypes.Variant{Character: e.Character, KeySequence: e.KeySequence, Key: e.KeySequence}
	if chord, next, err := e.Steps(); err == nil {
		v.Modifier, v.Key, v.Then = chord.Modifier, chord.Key, next
	}
	return v
}
