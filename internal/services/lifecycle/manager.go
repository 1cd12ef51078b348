package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ShutdownFunc is called once during teardown of the component it was
// registered for.
type ShutdownFunc func(ctx context.Context) error

type entry struct {
	name  string
	close ShutdownFunc
}

// Manager owns the shutdown sequence of the process: components register a
// teardown callback at startup and the manager drains them in reverse
// registration order once a termination signal arrives.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu      sync.Mutex
	once    sync.Once
	entries []entry
}

// New builds a manager; a non-positive timeout falls back to 15s.
func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{timeout: timeout, logger: logger}
}

// Register records a teardown callback. Registration order matters: the
// last component registered is stopped first.
func (m *Manager) Register(name string, fn ShutdownFunc) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.entries = append(m.entries, entry{name: name, close: fn})
	m.mu.Unlock()
}

// Shutdown drains all registered callbacks under the configured timeout.
// It runs at most once; later calls return nil immediately.
func (m *Manager) Shutdown(ctx context.Context) error {
	var result error
	m.once.Do(func() {
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, cancel := context.WithTimeout(ctx, m.timeout)
		defer cancel()

		m.mu.Lock()
		entries := m.entries
		m.entries = nil
		m.mu.Unlock()

		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			if err := e.close(ctx); err != nil {
				m.logger.Error("teardown failed", zap.String("hook", e.name), zap.Error(err))
				result = errors.Join(result, err)
				continue
			}
			m.logger.Info("stopped", zap.String("hook", e.name))
		}
	})
	return result
}

// Listen arms SIGINT/SIGTERM handling: the first signal cancels the run
// context, a second one exits immediately.
func (m *Manager) Listen(cancel context.CancelFunc) {
	if cancel == nil {
		return
	}
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		sig := <-sigCh
		m.logger.Info("termination signal", zap.String("signal", sig.String()))
		cancel()

		sig = <-sigCh
		m.logger.Warn("second signal, exiting now", zap.String("signal", sig.String()))
		os.Exit(1)
	}()
}
