//go:build linux

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const serviceName = "kbdviz.service"

// servicePath returns the systemd user unit path. The keymap belongs to the
// graphical session, so the service runs per user.
func servicePath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "systemd", "user", serviceName), nil
}

func install(logger *slog.Logger, args []string) error {
	exePath, err := currentExecutable()
	if err != nil {
		return err
	}
	unitPath, err := servicePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(unitPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(unitPath, []byte(systemdUnitContent(exePath, args)), 0o644); err != nil {
		return err
	}

	steps := [][]string{
		{"daemon-reload"},
		{"enable", serviceName},
		{"restart", serviceName},
	}
	for _, step := range steps {
		if err := runSystemctl(step...); err != nil {
			return err
		}
	}

	logger.Info("kbdviz user service installed", "path", unitPath, "exe", exePath)
	return nil
}

func uninstall(logger *slog.Logger) error {
	var errs []error

	if err := runSystemctl("stop", serviceName); err != nil {
		errs = append(errs, err)
	}
	if err := runSystemctl("disable", serviceName); err != nil {
		errs = append(errs, err)
	}
	unitPath, err := servicePath()
	if err != nil {
		errs = append(errs, err)
	} else if err := os.Remove(unitPath); err != nil && !os.IsNotExist(err) {
		errs = append(errs, err)
	}
	if err := runSystemctl("daemon-reload"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	logger.Info("kbdviz user service removed", "path", unitPath)
	return nil
}

func currentExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(exe)
}

func systemdUnitContent(exePath string, args []string) string {
	cmdline := []string{strconv.Quote(exePath), "serve"}
	for _, a := range args {
		cmdline = append(cmdline, strconv.Quote(a))
	}
	return fmt.Sprintf(`[Unit]
Description=kbdviz compose sequence query service
After=graphical-session.target
PartOf=graphical-session.target

[Service]
Type=simple
ExecStart=%s
Restart=on-failure

[Install]
WantedBy=graphical-session.target
`, strings.Join(cmdline, " "))
}

func runSystemctl(args ...string) error {
	full := append([]string{"--user"}, args...)
	cmd := exec.Command("systemctl", full...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %s failed: %w: %s", strings.Join(full, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}
