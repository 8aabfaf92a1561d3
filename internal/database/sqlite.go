package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/yishak-cs/BazaarSetu/internal/models"
	"github.com/yishak-cs/BazaarSetu/internal/services"
)

const (
	maxOpenConns    = 1
	connMaxLifetime = time.Hour
	queryTimeout    = 5 * time.Second
)

const snapshotSchema = `
	CREATE TABLE IF NOT EXISTS cart_snapshots (
		session_id TEXT PRIMARY KEY,
		vendor_id  TEXT NOT NULL DEFAULT '',
		payload    TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_cart_snapshots_vendor ON cart_snapshots(vendor_id);
`

// SnapshotStore is a sqlite key-value table of cart snapshots keyed by session id
type SnapshotStore struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ services.SnapshotStore = (*SnapshotStore)(nil)

// OpenSnapshotStore opens (creating if needed) the sqlite database at path
func OpenSnapshotStore(ctx context.Context, path string, logger *zap.Logger) (*SnapshotStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create sqlite directory")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(maxOpenConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping sqlite database")
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(pingCtx, pragma); err != nil {
			logger.Warn("failed to apply pragma", zap.String("pragma", pragma), zap.Error(err))
		}
	}

	if _, err := db.ExecContext(pingCtx, snapshotSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create cart_snapshots table")
	}

	logger.Info("sqlite snapshot store ready", zap.String("path", path))
	return &SnapshotStore{db: db, logger: logger}, nil
}

// Save upserts the snapshot for its session
func (s *SnapshotStore) Save(ctx context.Context, snap models.CartSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "encode cart snapshot")
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cart_snapshots (session_id, vendor_id, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			vendor_id = excluded.vendor_id,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		snap.SessionID, snap.VendorID, string(payload), snap.UpdatedAt.UnixMilli())
	if err != nil {
		return errors.Wrapf(err, "save cart snapshot %s", snap.SessionID)
	}
	return nil
}

// Load returns the snapshot for sessionID, or nil if there is none
func (s *SnapshotStore) Load(ctx context.Context, sessionID string) (*models.CartSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM cart_snapshots WHERE session_id = ?`, sessionID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load cart snapshot %s", sessionID)
	}

	var snap models.CartSnapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, errors.Wrapf(err, "decode cart snapshot %s", sessionID)
	}
	return &snap, nil
}

// Delete removes the snapshot for sessionID; deleting a missing one is not an error
func (s *SnapshotStore) Delete(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM cart_snapshots WHERE session_id = ?`, sessionID); err != nil {
		return errors.Wrapf(err, "delete cart snapshot %s", sessionID)
	}
	return nil
}

// PurgeOlderThan drops snapshots not updated since cutoff and returns how many went
func (s *SnapshotStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM cart_snapshots WHERE updated_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, errors.Wrap(err, "purge cart snapshots")
	}
	return res.RowsAffected()
}

// Health pings the database
func (s *SnapshotStore) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

// Close closes the database
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
