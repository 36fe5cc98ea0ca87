package api

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
)

// Request contains route parameters and additional args from the command.
type Request struct {
	Ctx     context.Context
	Params  map[string]string
	Payload string
}

// Response holds the JSON string to return to the client.
type Response struct {
	JSON string
}

// HandlerFunc processes a request and populates the response.
// Returns an error on failure. The logger provided is a connection-scoped logger
// enriched with remote address metadata by the API server.
type HandlerFunc func(req *Request, res *Response, logger *slog.Logger) error

// Router matches request paths against patterns such as "variants/{letter}".
// Literal segments compare case-insensitively. Parameter segments are
// path-unescaped and keep their case, so "variants/%C3%89" yields letter "É".
type Router struct {
	routes []route
}

type route struct {
	pattern  string
	segments []segment
	handler  HandlerFunc
}

// segment is either a lowercased literal or a named parameter.
type segment struct {
	literal string
	param   string
}

func NewRouter() *Router { return &Router{} }

// Register adds a handler for pattern. Routes are tried in registration
// order.
func (r *Router) Register(pattern string, handler HandlerFunc) {
	rt := route{pattern: pattern, handler: handler}
	for _, part := range strings.Split(pattern, "/") {
		if name, ok := strings.CutPrefix(part, "{"); ok && strings.HasSuffix(name, "}") {
			rt.segments = append(rt.segments, segment{param: strings.TrimSuffix(name, "}")})
			continue
		}
		rt.segments = append(rt.segments, segment{literal: strings.ToLower(part)})
	}
	r.routes = append(r.routes, rt)
}

// Patterns lists the registered patterns in registration order.
func (r *Router) Patterns() []string {
	out := make([]string, 0, len(r.routes))
	for _, rt := range r.routes {
		out = append(out, rt.pattern)
	}
	return out
}

// Match returns the handler of the first route matching path and its
// parameters, or nil when none does.
func (r *Router) Match(path string) (HandlerFunc, map[string]string) {
	parts := strings.Split(path, "/")
	for _, rt := range r.routes {
		if params, ok := rt.match(parts); ok {
			return rt.handler, params
		}
	}
	return nil, nil
}

// match fails on empty or badly escaped parameter values.
func (rt route) match(parts []string) (map[string]string, bool) {
	if len(parts) != len(rt.segments) {
		return nil, false
	}
	params := map[string]string{}
	for i, seg := range rt.segments {
		if seg.param == "" {
			if !strings.EqualFold(seg.literal, parts[i]) {
				return nil, false
			}
			continue
		}
		v, err := url.PathUnescape(parts[i])
		if err != nil || v == "" {
			return nil, false
		}
		params[seg.param] = v
	}
	return params, true
}
