package shutdown

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mdnishan/reportcron/pkg/logger"
)

type Task func() error

type Manager struct {
	logger   logger.Logger
	tasks    map[string]Task
	mu       sync.Mutex
	shutdown chan struct{}
	once     sync.Once
	timeout  time.Duration
}

func NewManager(logger logger.Logger) *Manager {
	return &Manager{
		logger:   logger,
		tasks:    make(map[string]Task),
		shutdown: make(chan struct{}),
		timeout:  30 * time.Second,
	}
}

func (m *Manager) SetTimeout(d time.Duration) {
	if d > 0 {
		m.timeout = d
	}
}

func (m *Manager) RegisterTask(name string, task Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[name] = task
}

func (m *Manager) Initiate() {
	m.once.Do(func() {
		close(m.shutdown)
	})
}

func (m *Manager) Done() <-chan struct{} {
	return m.shutdown
}

func (m *Manager) Wait(ctx context.Context) error {
	select {
	case <-m.shutdown:
		m.logger.Info("shutdown | Starting shutdown sequence")
		return m.executeTasks()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) executeTasks() error {
	// One timeout budget shared by all cleanup tasks
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Debug("shutdown | executing %d tasks before shutdown", len(m.tasks))
	var task_num int = 1
	for name, task := range m.tasks {
		m.logger.Info("shutdown | Executing shutdown task %d: %s", task_num, name)
		if err := m.runTask(ctx, task); err != nil {
			m.logger.Error("shutdown | Task failed, task: %s, error: %s", name, err)
		}
		task_num++
	}

	return nil
}

// runTask runs one cleanup task, abandoning it when the shutdown
// timeout budget is spent.
func (m *Manager) runTask(ctx context.Context, task Task) error {
	done := make(chan error, 1)
	go func() {
		done <- task()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("abandoned after shutdown timeout (%s): %w", m.timeout, ctx.Err())
	}
}
