package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/kbdviz/kbdviz/internal/log"
	"github.com/kbdviz/kbdviz/internal/server/api/auth"
)

var wsRegex = regexp.MustCompile(`\s`)

// Server implements the small TCP query API. Each connection carries one
// request and one JSON line response.
type Server struct {
	addr      string
	ln        net.Listener
	logger    *slog.Logger
	rawLogger log.RawLogger
	router    *Router
	config    ServerConfig
	key       []byte
}

// New creates a new API server. rawLogger may be nil. When config.Password is
// set, New derives the connection key and unauthenticated requests are
// rejected.
func New(addr string, config ServerConfig, logger *slog.Logger, rawLogger log.RawLogger) (*Server, error) {
	if rawLogger == nil {
		rawLogger = log.NewRaw(nil)
	}
	a := &Server{
		addr:      addr,
		logger:    logger,
		rawLogger: rawLogger,
		config:    config,
	}
	if config.Password != "" {
		key, err := auth.DeriveKey(config.Password)
		if err != nil {
			return nil, fmt.Errorf("derive api key: %w", err)
		}
		a.key = key
	}
	a.router = NewRouter()
	return a, nil
}

// Router returns the router used by the API server so callers can register handlers.
func (a *Server) Router() *Router { return a.router }

// Config returns the server configuration.
func (a *Server) Config() ServerConfig { return a.config }

// Addr returns the bound listen address once started, the configured one
// before.
func (a *Server) Addr() string {
	if a.ln != nil {
		return a.ln.Addr().String()
	}
	return a.addr
}

// Start listens on the configured address and serves incoming API commands.
func (a *Server) Start() error {
	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return err
	}
	a.ln = ln
	a.logger.Info("API listening", "addr", ln.Addr().String(), "auth", a.key != nil)
	go a.serve()
	return nil
}

// Close stops the API server.
func (a *Server) Close() {
	if a.ln != nil {
		_ = a.ln.Close()
	}
}

func (a *Server) serve() {
	for {
		c, err := a.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				a.logger.Info("API server stopped")
				return
			}
			a.logger.Info("API accept error", "error", err)
			return
		}
		go a.handleConn(c)
	}
}

func (a *Server) writeError(w io.Writer, err error) {
	apiErr := WrapError(err)
	problemJSON, _ := json.Marshal(apiErr)
	a.write(w, string(problemJSON)+"\n")
}

func (a *Server) writeOK(w io.Writer, rest string) {
	a.write(w, rest+"\n")
}

func (a *Server) write(w io.Writer, line string) {
	a.rawLogger.Log(false, []byte(line))
	_, _ = io.WriteString(w, line)
}

func (a *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	connCtx, connCancel := context.WithCancel(context.Background())
	defer connCancel()

	connLogger := a.logger.With("remote", conn.RemoteAddr().String())
	if a.config.ConnectionTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(a.config.ConnectionTimeout))
	}
	r := bufio.NewReader(conn)
	var w io.Writer = conn

	if a.key != nil {
		isAuth, _ := auth.IsAuthHandshake(r)
		if !isAuth {
			connLogger.Warn("api unauthenticated request rejected")
			a.writeError(w, ErrUnauthorized("authentication required"))
			return
		}
		secure, sr, err := auth.Accept(conn, r, a.key)
		if err != nil {
			connLogger.Error("api handshake failed", "error", err)
			a.writeError(w, err)
			return
		}
		connLogger.Debug("api client authenticated")
		r, w = sr, secure
	}

	// Read until null terminator
	reqData, err := r.ReadString('\x00')
	if err != nil {
		if err == io.EOF {
			connLogger.Error("api incomplete request (no null terminator)")
		} else {
			connLogger.Error("read api data", "error", err)
		}
		return
	}
	a.rawLogger.Log(true, []byte(reqData))
	reqData = strings.TrimSuffix(reqData, "\x00")

	if reqData == "" {
		connLogger.Error("api empty command")
		a.writeError(w, ErrBadRequest("empty request"))
		return
	}

	path, payload := splitRequest(reqData)
	if path == "" {
		connLogger.Error("api empty path")
		a.writeError(w, ErrBadRequest("empty path"))
		return
	}

	connLogger.Info("api cmd", "path", path)

	h, params := a.router.Match(path)
	if h == nil {
		connLogger.Error("api unknown path", "path", path)
		a.writeError(w, ErrNotFound(fmt.Sprintf("unknown path: %s", path)))
		return
	}
	req := &Request{Ctx: connCtx, Params: params, Payload: payload}
	res := &Response{}
	if err := h(req, res, connLogger); err != nil {
		connLogger.Error("api handler error", "path", path, "error", err)
		a.writeError(w, err)
		return
	}
	connLogger.Debug("api handler success", "path", path)
	a.writeOK(w, res.JSON)
}

// splitRequest splits on the first whitespace character.
func splitRequest(data string) (path, payload string) {
	loc := wsRegex.FindStringIndex(data)
	if loc == nil {
		return data, ""
	}
	return data[:loc[0]], data[loc[1]:]
}
