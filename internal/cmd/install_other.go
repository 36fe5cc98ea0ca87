//go:build !linux

package cmd

import (
	"errors"
	"log/slog"
)

var errServiceUnsupported = errors.New("service management is only supported on Linux (systemd)")

func install(logger *slog.Logger, args []string) error { return errServiceUnsupported }

func uninstall(logger *slog.Logger) error { return errServiceUnsupported }
