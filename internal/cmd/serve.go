package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/kbdviz/kbdviz/compose"
	"github.com/kbdviz/kbdviz/internal/configpaths"
	"github.com/kbdviz/kbdviz/internal/log"
	"github.com/kbdviz/kbdviz/internal/metrics"
	"github.com/kbdviz/kbdviz/internal/server/api"
	"github.com/kbdviz/kbdviz/internal/server/api/auth"
	"github.com/kbdviz/kbdviz/internal/server/api/handler"
	"github.com/kbdviz/kbdviz/internal/watch"
)

const keyFileName = "kbdviz.key.txt"

// Serve runs the query service.
type Serve struct {
	LayoutOptions `embed:""`

	ApiServerConfig api.ServerConfig `embed:"" prefix:"api."`
	Auth            bool             `help:"Require a password; one is generated into the config directory unless --api.password is set" env:"KBDVIZ_AUTH"`
	Watch           bool             `help:"Rebuild the index when the layout file changes" default:"true" negatable:"" env:"KBDVIZ_WATCH"`
	Metrics         metrics.Config   `embed:"" prefix:"metrics."`
}

// Run is called by Kong when the serve command is executed.
func (s *Serve) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.StartServer(ctx, logger, rawLogger, nil)
}

// StartServer serves until ctx is done. ready, when non-nil, receives the
// started API server.
func (s *Serve) StartServer(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger, ready func(*api.Server)) error {
	if s.ApiServerConfig.Addr == "" {
		return errors.New("API server address must be set (default :3242)")
	}
	if s.Auth && s.ApiServerConfig.Password == "" {
		pwd, err := loadOrCreateKey(logger)
		if err != nil {
			return err
		}
		s.ApiServerConfig.Password = pwd
	}

	holder := compose.NewHolder()
	reload := s.reloader(holder, logger)
	if _, err := reload(ctx); err != nil {
		logger.Error("layout rejected, serving an empty index", "source", s.Source(), "error", err)
	} else {
		idx := holder.Load()
		logger.Info("index ready", "layout", idx.Layout(), "source", s.Source(), "letters", idx.Count())
	}

	m := metrics.New(holder)
	apiSrv, err := api.New(s.ApiServerConfig.Addr, s.ApiServerConfig, logger, rawLogger)
	if err != nil {
		return err
	}
	r := apiSrv.Router()
	r.Register("ping", m.Instrument("ping", handler.Ping()))
	r.Register("index/count", m.Instrument("index/count", handler.IndexCount(holder)))
	r.Register("variants", m.Instrument("variants", handler.Variants(holder)))
	r.Register("variants/{letter}", m.Instrument("variants", handler.Variants(holder)))
	r.Register("layout/info", m.Instrument("layout/info", handler.LayoutInfo(holder, s.Source())))
	if s.Builtin == "" {
		r.Register("layout/reload", m.Instrument("layout/reload", handler.LayoutReload(holder, reload)))
	} else {
		r.Register("layout/reload", m.Instrument("layout/reload", handler.LayoutReload(holder, nil)))
	}

	if s.Watch && s.Layout != "" {
		w := watch.New(s.Layout, 0)
		w.OnChange(func(path string) {
			if _, err := reload(ctx); err != nil {
				logger.Error("layout changed but was rejected", "path", path, "error", err)
			}
		})
		if err := w.Start(); err != nil {
			return fmt.Errorf("watch layout: %w", err)
		}
		defer w.Close()
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case err := <-w.Errors():
					logger.Warn("layout watcher", "error", err)
				}
			}
		}()
		logger.Info("watching layout", "path", s.Layout)
	}

	if s.Metrics.Addr != "" {
		if _, err := m.Serve(ctx, s.Metrics, logger); err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
	}

	if err := apiSrv.Start(); err != nil {
		logger.Error("failed to start API server", "error", err)
		return err
	}
	defer apiSrv.Close()
	if ready != nil {
		ready(apiSrv)
	}

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

// reloader loads the layout and rebuilds the index. Concurrent reloads from
// the watcher and the API are serialized.
func (s *Serve) reloader(holder *compose.Holder, logger *slog.Logger) handler.ReloadFunc {
	var mu sync.Mutex
	return func(ctx context.Context) (compose.Stats, error) {
		mu.Lock()
		defer mu.Unlock()

		src, err := s.Load(ctx, logger)
		if err != nil {
			return compose.Stats{}, err
		}
		stats, err := holder.Rebuild(src)
		if err != nil {
			return compose.Stats{}, err
		}
		logger.Info("index rebuilt", "letters", stats.Letters, "entries", stats.Entries,
			"dead_keys", stats.DeadKeys, "unindexed", stats.Unindexed)
		return stats, nil
	}
}

func loadOrCreateKey(logger *slog.Logger) (string, error) {
	keyFileDir, err := configpaths.DefaultConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve key file path: %w", err)
	}
	keyFilePath := filepath.Join(keyFileDir, keyFileName)
	if pwd, err := os.ReadFile(keyFilePath); err == nil {
		if p := strings.TrimSpace(string(pwd)); p != "" {
			return p, nil
		}
	}

	newPwd, err := auth.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate new API password: %w", err)
	}
	if err := os.MkdirAll(keyFileDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config dir for key file: %w", err)
	}
	if err := os.WriteFile(keyFilePath, []byte(newPwd), 0o600); err != nil {
		return "", fmt.Errorf("failed to write new API password to file: %w", err)
	}
	logger.Info("generated API server password", "path", keyFilePath)
	logger.Info("-------------------------------------")
	logger.Info("your kbdviz API password is:")
	logger.Info(newPwd)
	logger.Info("-------------------------------------")
	logger.Info("you can change it at any time by editing the file")
	return newPwd, nil
}
