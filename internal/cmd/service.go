package cmd

import "log/slog"

// Service manages a background unit running "kbdviz serve" for the current
// user.
type Service struct {
	Install   ServiceInstall   `cmd:"" help:"Install and start the kbdviz user service"`
	Uninstall ServiceUninstall `cmd:"" help:"Stop and remove the kbdviz user service"`
}

type ServiceInstall struct {
	Args []string `arg:"" optional:"" help:"Extra arguments passed to kbdviz serve"`
}

func (s *ServiceInstall) Run(logger *slog.Logger) error { return install(logger, s.Args) }

type ServiceUninstall struct{}

func (s *ServiceUninstall) Run(logger *slog.Logger) error { return uninstall(logger) }
