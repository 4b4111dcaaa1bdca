package cli

import (
	"context"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/twnotify/internal/build"
	"github.com/ariel-frischer/twnotify/internal/cli/shared"
	"github.com/ariel-frischer/twnotify/internal/config"
	"github.com/ariel-frischer/twnotify/internal/daemon"
	"github.com/ariel-frischer/twnotify/internal/logger"
	"github.com/ariel-frischer/twnotify/internal/metrics"
	"github.com/ariel-frischer/twnotify/internal/notify"
	"github.com/ariel-frischer/twnotify/internal/server"
	"github.com/ariel-frischer/twnotify/internal/status"
)

// liveNotifier is what the daemon needs from notify.Notifier.
type liveNotifier interface {
	daemon.LiveNotifier
	Close() error
}

// newNotifier builds the daemon's notifier. Tests swap it for a fake.
var newNotifier = func(opts notify.Options) (liveNotifier, error) {
	n, err := notify.New(opts)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	cfg, err := loadUserConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.CheckLogFile(cfg.LogFile); err != nil {
		return invalid(err)
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	return serve(ctx, cfg, log, cmd.ErrOrStderr())
}

// serve wires the poll loop and, when configured, the status server, then
// blocks until ctx is done.
func serve(ctx context.Context, cfg *config.Configuration, log *slog.Logger, stderr io.Writer) error {
	client := newAPIClient(cfg)
	fetcher, err := status.New(status.Strategy(cfg.Strategy), client)
	if err != nil {
		return invalid(err)
	}

	notifier, err := newNotifier(notify.Options{Logger: log})
	if err != nil {
		return shared.WrapExitError(shared.ExitMissingDependency, err)
	}
	defer func() {
		if err := notifier.Close(); err != nil {
			log.Warn("closing notifier", "error", err)
		}
	}()

	m := metrics.New()
	poller := daemon.NewPoller(daemon.PollerConfig{
		Username: cfg.Username,
		Interval: cfg.PollInterval(),
		Follows:  client,
		Fetcher:  fetcher,
		Notifier: notifier,
		Logger:   log,
		Metrics:  m,
	})
	supervisor := daemon.NewSupervisor(daemon.SupervisorConfig{
		Runner:     poller,
		ErrorLog:   daemon.NewErrorLog(stderr, cfg.LogFile),
		Logger:     log,
		Metrics:    m,
		RetryDelay: cfg.RestartDelay(),
	})

	var serverDone chan struct{}
	if cfg.ListenAddr != "" {
		ln, err := net.Listen("tcp", cfg.ListenAddr)
		if err != nil {
			return errors.Wrapf(err, "status server cannot listen on %s", cfg.ListenAddr)
		}
		srv := server.New(cfg.ListenAddr, server.NewRouter(poller, log, m), log)
		serverDone = make(chan struct{})
		go func() {
			defer close(serverDone)
			if err := srv.Serve(ctx, ln); err != nil {
				log.Error("status server failed", "error", err)
			}
		}()
	}

	log.Info("twnotify starting",
		"version", build.Version,
		"username", cfg.Username,
		"interval", cfg.PollInterval(),
		"strategy", cfg.Strategy,
		"api", client.BaseURL(),
		"logfile", cfg.LogFile,
	)

	err = supervisor.Run(ctx)
	if serverDone != nil {
		<-serverDone
	}
	log.Info("twnotify stopped", "restarts", supervisor.Restarts())
	return err
}
