package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/ariel-frischer/twnotify/internal/metrics"
)

// Runner is a unit of work the supervisor keeps alive.
type Runner interface {
	Run(ctx context.Context) error
}

// SupervisorConfig wires a Supervisor.
type SupervisorConfig struct {
	Runner     Runner
	ErrorLog   *ErrorLog
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	RetryDelay time.Duration
	Sleep      SleepFunc
}

// Supervisor restarts its runner after every failure until the context ends.
// There is no retry limit.
type Supervisor struct {
	cfg      SupervisorConfig
	restarts int
}

// NewSupervisor creates a supervisor, filling defaults.
func NewSupervisor(cfg SupervisorConfig) *Supervisor {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ErrorLog == nil {
		cfg.ErrorLog = NewErrorLog(nil, "")
	}
	if cfg.Sleep == nil {
		cfg.Sleep = Sleep
	}
	return &Supervisor{cfg: cfg}
}

// Restarts returns how many times the runner has been restarted.
func (s *Supervisor) Restarts() int {
	return s.restarts
}

// Run runs the runner until ctx is done. It returns nil on cancellation;
// every other outcome, panics included, is recorded and followed by a restart.
func (s *Supervisor) Run(ctx context.Context) error {
	for {
		err := s.runOnce(ctx)
		if ctx.Err() != nil {
			s.cfg.Logger.Info("shutting down")
			return nil
		}
		if err == nil {
			err = errors.New("poll loop exited without error")
		}

		if lerr := s.cfg.ErrorLog.Record(err); lerr != nil {
			s.cfg.Logger.Error("failed to write error log", "path", s.cfg.ErrorLog.Path(), "error", lerr)
		}
		s.restarts++
		if s.cfg.Metrics != nil {
			s.cfg.Metrics.IncPollErrors()
			s.cfg.Metrics.IncRestarts()
		}
		s.cfg.Logger.Warn("restarting poll loop", "restarts", s.restarts, "delay", s.cfg.RetryDelay)

		if s.cfg.RetryDelay > 0 {
			if err := s.cfg.Sleep(ctx, s.cfg.RetryDelay); err != nil {
				return nil
			}
		}
	}
}

func (s *Supervisor) runOnce(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = errors.Wrap(rerr, "poll loop panic")
				return
			}
			err = errors.Errorf("poll loop panic: %v", r)
		}
	}()
	return s.cfg.Runner.Run(ctx)
}
