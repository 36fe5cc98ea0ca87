// Package testing holds helpers shared by the query service tests.
package testing

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/kbdviz/kbdviz/internal/server/api"
)

// StartAPIServer starts an API server on a free port and calls register to allow
// the caller to register the handlers needed for the test. Returns the address
// and a function to call when done.
func StartAPIServer(t *testing.T, register func(r *api.Router, apiSrv *api.Server)) (addr string, done func()) {
	t.Helper()
	return StartAPIServerWithConfig(t, api.ServerConfig{}, register)
}

// StartAPIServerWithConfig is StartAPIServer with an explicit server
// configuration, e.g. a password. cfg.Addr is ignored.
func StartAPIServerWithConfig(t *testing.T, cfg api.ServerConfig, register func(r *api.Router, apiSrv *api.Server)) (addr string, done func()) {
	t.Helper()
	cfg.Addr = "127.0.0.1:0"
	apiSrv, err := api.New(cfg.Addr, cfg, slog.New(slog.DiscardHandler), nil)
	if err != nil {
		t.Fatalf("api new failed: %v", err)
	}
	if register != nil {
		register(apiSrv.Router(), apiSrv)
	}
	if err := apiSrv.Start(); err != nil {
		t.Fatalf("api start failed: %v", err)
	}

	done = func() {
		apiSrv.Close()
		time.Sleep(10 * time.Millisecond)
	}
	return apiSrv.Addr(), done
}

// ExecCmd dials the API server, sends cmd and reads the full response.
// The command should not include a trailing newline. Returns the response
// without the trailing newline.
func ExecCmd(t *testing.T, addr string, cmd string) string {
	t.Helper()
	c, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer c.Close()

	_, _ = fmt.Fprintf(c, "%s\x00", cmd)

	r := bufio.NewReader(c)
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		t.Fatalf("read failed: %v", err)
	}

	result := strings.TrimSuffix(line, "\n")
	result = strings.TrimSuffix(result, "\r")
	return result
}

var wsRegex = regexp.MustCompile(`\s`)

// ExecuteLine routes a command string through the provided router,
// emulating the server's connection handling without network IO.
func ExecuteLine(t *testing.T, r *api.Router, data string) string {
	t.Helper()
	if data == "" {
		return jsonError(api.ErrBadRequest("empty request"))
	}

	var path, payload string
	if loc := wsRegex.FindStringIndex(data); loc != nil {
		path, payload = data[:loc[0]], data[loc[1]:]
	} else {
		path = data
	}
	if path == "" {
		return jsonError(api.ErrBadRequest("empty path"))
	}

	h, params := r.Match(path)
	if h == nil {
		return jsonError(api.ErrNotFound(fmt.Sprintf("unknown path: %s", path)))
	}
	req := &api.Request{Ctx: t.Context(), Params: params, Payload: payload}
	res := &api.Response{}
	if err := h(req, res, slog.New(slog.DiscardHandler)); err != nil {
		return jsonError(err)
	}
	return res.JSON
}

func jsonError(err error) string {
	b, _ := json.Marshal(api.WrapError(err))
	return string(b)
}
