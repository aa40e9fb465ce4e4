package usecase

//go:generate mockgen -source=connection.go -destination=../../tests/mock/usecase/connection.go -package=usecasemock

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"purchase-engine/internal/pkg/errs"
)

type ConnectionManager interface {
	// Initialize connects to the store and loads the catalog. It returns false on failure
	// and never panics. Calling it again while connected is a no-op returning true.
	Initialize(ctx context.Context) bool
	Shutdown(ctx context.Context) error
	Available() bool
	// OnShutdown registers fn to run while the connection is being torn down.
	OnShutdown(fn func())
}

type connectionManagerImpl struct {
	store   Store
	catalog *Catalog
	logger  *slog.Logger

	mu            sync.Mutex
	initialized   bool
	available     atomic.Bool
	shutdownHooks []func()
}

func NewConnectionManager(store Store, catalog *Catalog, logger *slog.Logger) ConnectionManager {
	return &connectionManagerImpl{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

func (m *connectionManagerImpl) Initialize(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return true
	}

	if err := m.store.Connect(ctx); err != nil {
		m.logger.Error("store connection failed",
			"platform", m.store.Platform().String(),
			"error", err)
		return false
	}
	m.initialized = true
	m.available.Store(true)

	products, err := m.catalog.Load(ctx)
	if err != nil {
		m.logger.Warn("catalog load failed, continuing with an empty catalog", "error", err)
	} else {
		m.logger.Info("store connected",
			"platform", m.store.Platform().String(),
			"products", len(products))
	}
	return true
}

func (m *connectionManagerImpl) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil
	}

	m.available.Store(false)
	for _, fn := range m.shutdownHooks {
		fn()
	}
	m.catalog.Reset()
	m.initialized = false

	if err := m.store.Disconnect(ctx); err != nil {
		return errs.Wrap(err, "disconnect store")
	}
	m.logger.Info("store disconnected")
	return nil
}

func (m *connectionManagerImpl) Available() bool {
	return m.available.Load()
}

func (m *connectionManagerImpl) OnShutdown(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shutdownHooks = append(m.shutdownHooks, fn)
}
