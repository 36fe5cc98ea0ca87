package log

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"
)

// RawLogger records the raw frames of the query service.
type RawLogger interface {
	Log(in bool, data []byte)
}

type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a new RawLogger. A nil writer gives a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// Log writes one line per frame with a timestamp, the direction and the
// frame quoted as a Go string so NUL terminators and newlines stay visible.
// in=true means client->server.
func (r *rawLogger) Log(in bool, data []byte) {
	if len(data) == 0 || r.w == nil {
		return
	}

	dir := "S->C"
	if in {
		dir = "C->S"
	}

	line := fmt.Sprintf("%s %s frame: %d bytes, %s\n",
		time.Now().Format("2006/01/02 15:04:05"),
		dir,
		len(data),
		strconv.QuoteToGraphic(string(data)))

	r.mu.Lock()
	_, _ = io.WriteString(r.w, line)
	r.mu.Unlock()
}
