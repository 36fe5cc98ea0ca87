package api

import "time"

// ServerConfig represents the query service configuration.
type ServerConfig struct {
	Addr              string        `help:"API server listen address" default:":3242" env:"KBDVIZ_API_ADDR"`
	Password          string        `help:"Require clients to authenticate with this password (empty: no authentication)" env:"KBDVIZ_API_PASSWORD"`
	ConnectionTimeout time.Duration `help:"Time a client may take to send its request" default:"5s" env:"KBDVIZ_API_CONNECTION_TIMEOUT"`
}
