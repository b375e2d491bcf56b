package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"

	"synk/internal/watcher"
)

var (
	watchInstall   bool
	watchUninstall bool
	watchStart     bool
	watchStop      bool
	watchStatus    bool
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Remind you when time logging lapses",
		Long: `Run the reminder watcher.

Without flags the watcher runs in the foreground: it periodically checks
when your last time entry ended and sends a desktop notification once the
gap exceeds the threshold.

With one of the service flags it manages the watcher as a system service
(systemd on Linux, launchd on macOS, a Windows Service on Windows).`,
		RunE: runWatch,
	}

	cmd.Flags().BoolVar(&watchInstall, "install", false, "Install the watcher as a system service")
	cmd.Flags().BoolVar(&watchUninstall, "uninstall", false, "Uninstall the watcher system service")
	cmd.Flags().BoolVar(&watchStart, "start", false, "Start the watcher service")
	cmd.Flags().BoolVar(&watchStop, "stop", false, "Stop the watcher service")
	cmd.Flags().BoolVar(&watchStatus, "status", false, "Check the watcher service status")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	flagCount := 0
	for _, set := range []bool{watchInstall, watchUninstall, watchStart, watchStop, watchStatus} {
		if set {
			flagCount++
		}
	}
	if flagCount > 1 {
		return fmt.Errorf("please specify only one operation at a time")
	}
	if flagCount == 1 {
		return manageWatchService()
	}

	app, err := setup()
	if err != nil {
		return err
	}

	w := watcher.New(app.Store, watcher.NewDesktopNotifier(),
		app.Settings.Watch.Interval, app.Settings.Watch.Threshold, app.Logger)

	if err := w.Run(cmd.Context()); err != nil && !stderrors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// watchProgram implements service.Interface. The service manager invokes
// the installed binary with the "watch" argument, so Start only has to run
// the same foreground loop in-process.
type watchProgram struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (p *watchProgram) Start(s service.Service) error {
	// Start must not block; the loop runs async.
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx)
	return nil
}

func (p *watchProgram) run(ctx context.Context) {
	defer close(p.done)

	app, err := setup()
	if err != nil {
		_ = service.ConsoleLogger.Errorf("watcher setup failed: %v", err)
		return
	}

	w := watcher.New(app.Store, watcher.NewDesktopNotifier(),
		app.Settings.Watch.Interval, app.Settings.Watch.Threshold, app.Logger)
	_ = w.Run(ctx)
}

func (p *watchProgram) Stop(s service.Service) error {
	if p.cancel != nil {
		p.cancel()
		<-p.done
	}
	return nil
}

func manageWatchService() error {
	svcConfig := &service.Config{
		Name:        "synk-watch",
		DisplayName: "Synk Reminder Watcher",
		Description: "Reminds you to log your work time when no entry has been booked for a while.",
		Arguments:   []string{"watch"},
	}

	s, err := service.New(&watchProgram{}, svcConfig)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	switch {
	case watchInstall:
		if err := s.Install(); err != nil {
			return fmt.Errorf("failed to install service: %w", err)
		}
		fmt.Println("Service installed. Start it with: synk watch --start")
	case watchUninstall:
		_ = s.Stop()
		if err := s.Uninstall(); err != nil {
			return fmt.Errorf("failed to uninstall service: %w", err)
		}
		fmt.Println("Service uninstalled.")
	case watchStart:
		if err := s.Start(); err != nil {
			return fmt.Errorf("failed to start service: %w", err)
		}
		fmt.Println("Service started.")
	case watchStop:
		if err := s.Stop(); err != nil {
			return fmt.Errorf("failed to stop service: %w", err)
		}
		fmt.Println("Service stopped.")
	case watchStatus:
		status, err := s.Status()
		if err != nil {
			return fmt.Errorf("failed to get service status: %w", err)
		}
		switch status {
		case service.StatusRunning:
			fmt.Println("Service status: running")
		case service.StatusStopped:
			fmt.Println("Service status: stopped")
		default:
			fmt.Println("Service status: unknown")
		}
	}

	return nil
}
