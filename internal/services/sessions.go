package services

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yishak-cs/BazaarSetu/internal/models"
)

// SnapshotStore persists cart snapshots between restarts.
// Load returns nil, nil when no snapshot exists for id.
type SnapshotStore interface {
	Save(ctx context.Context, snap models.CartSnapshot) error
	Load(ctx context.Context, sessionID string) (*models.CartSnapshot, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionManager owns the lifecycle of cart stores. A cart is created when a
// session starts, looked up by session id, and dropped when the session ends.
type SessionManager struct {
	store  SnapshotStore
	logger *zap.Logger

	mu    sync.RWMutex
	carts map[string]*CartStore
}

// NewSessionManager creates a session manager. store may be nil, in which case
// carts live only in memory.
func NewSessionManager(store SnapshotStore, logger *zap.Logger) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{
		store:  store,
		logger: logger,
		carts:  make(map[string]*CartStore),
	}
}

// Start opens a new empty cart for vendorID ("" for an anonymous visitor)
func (m *SessionManager) Start(ctx context.Context, vendorID string) *CartStore {
	cart := NewCartStore(uuid.NewString())
	m.attach(cart, vendorID)
	if m.store != nil {
		if err := m.store.Save(ctx, cart.Snapshot()); err != nil {
			m.logger.Error("failed to save cart snapshot",
				zap.String("session_id", cart.ID()),
				zap.Error(err))
		}
	}

	m.mu.Lock()
	m.carts[cart.ID()] = cart
	m.mu.Unlock()

	m.logger.Info("cart session started",
		zap.String("session_id", cart.ID()),
		zap.String("vendor_id", vendorID))
	return cart
}

// Get returns the live cart for sessionID, restoring it from the snapshot
// store if this process has not seen it yet.
func (m *SessionManager) Get(ctx context.Context, sessionID string) (*CartStore, error) {
	m.mu.RLock()
	cart, ok := m.carts[sessionID]
	m.mu.RUnlock()
	if ok {
		return cart, nil
	}

	if m.store == nil {
		return nil, errors.Wrapf(ErrCartNotFound, "session %s", sessionID)
	}
	snap, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "load cart snapshot")
	}
	if snap == nil {
		return nil, errors.Wrapf(ErrCartNotFound, "session %s", sessionID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// another request may have restored it meanwhile
	if cart, ok := m.carts[sessionID]; ok {
		return cart, nil
	}
	cart = NewCartStore(sessionID)
	cart.Restore(*snap)
	m.attach(cart, snap.VendorID)
	m.carts[sessionID] = cart

	m.logger.Info("cart session restored",
		zap.String("session_id", sessionID),
		zap.Int("lines", len(snap.Lines)))
	return cart, nil
}

// End tears down the session and forgets its snapshot
func (m *SessionManager) End(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	cart, ok := m.carts[sessionID]
	delete(m.carts, sessionID)
	m.mu.Unlock()

	// a caller still holding the cart must not write the snapshot back
	if ok {
		cart.detach()
	}
	if m.store != nil {
		if err := m.store.Delete(ctx, sessionID); err != nil {
			return errors.Wrap(err, "delete cart snapshot")
		}
	} else if !ok {
		return errors.Wrapf(ErrCartNotFound, "session %s", sessionID)
	}

	m.logger.Info("cart session ended", zap.String("session_id", sessionID))
	return nil
}

// Count returns the number of live carts
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.carts)
}

func (m *SessionManager) attach(cart *CartStore, vendorID string) {
	if m.store == nil {
		cart.bind(vendorID, nil)
		return
	}
	cart.bind(vendorID, func(snap models.CartSnapshot) {
		if err := m.store.Save(context.Background(), snap); err != nil {
			m.logger.Error("failed to save cart snapshot",
				zap.String("session_id", snap.SessionID),
				zap.Error(err))
		}
	})
}
