// Package eventbus carries the store's global purchase event stream to every listener.
package eventbus

import (
	"log/slog"
	"sync"

	"purchase-engine/internal/domain/purchase"
	"purchase-engine/internal/infra/platform/codec"
	"purchase-engine/internal/usecase"
)

type Bus struct {
	logger *slog.Logger

	mu        sync.RWMutex
	nextID    int
	listeners map[int]usecase.EventListener
}

func New(logger *slog.Logger) *Bus {
	return &Bus{
		logger:    logger,
		listeners: make(map[int]usecase.EventListener),
	}
}

func (b *Bus) Subscribe(l usecase.EventListener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// Dispatch decodes a raw platform event and delivers it.
func (b *Bus) Dispatch(raw []byte) error {
	ev, err := codec.DecodeEvent(raw)
	if err != nil {
		b.logger.Warn("dropping undecodable platform event", "error", err)
		return err
	}

	switch ev.Type {
	case codec.EventPurchaseUpdated:
		b.PublishUpdated(*ev.Outcome)
	case codec.EventPurchaseError:
		b.PublishError(*ev.Error)
	}
	return nil
}

func (b *Bus) PublishUpdated(o purchase.Outcome) {
	for _, l := range b.snapshot() {
		l.OnPurchaseUpdated(o)
	}
}

func (b *Bus) PublishError(e purchase.PlatformError) {
	for _, l := range b.snapshot() {
		l.OnPurchaseError(e)
	}
}

func (b *Bus) Listeners() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}

func (b *Bus) snapshot() []usecase.EventListener {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]usecase.EventListener, 0, len(b.listeners))
	for _, l := range b.listeners {
		out = append(out, l)
	}
	return out
}
