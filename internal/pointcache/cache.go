// Waypoint - Delivery Network Simulation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package pointcache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/waypoint/internal/kvstore"
	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
)

var (
	// ErrCacheCorrupt means the stored payload could not be used. Callers
	// treat it as a miss.
	ErrCacheCorrupt = errors.New("point cache corrupt")

	// ErrStorageWriteFailed wraps any failure to persist or back up points.
	ErrStorageWriteFailed = errors.New("point cache write failed")
)

const backupSegment = ":backup:"

// Record is the persisted form of a snapshot.
type Record struct {
	RunID       string                 `json:"run_id,omitempty"`
	GeneratedAt time.Time              `json:"generated_at"`
	Points      []models.DeliveryPoint `json:"points"`
}

// envelope mirrors Record with points left raw so each entry can be
// validated on its own.
type envelope struct {
	RunID       string            `json:"run_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Points      []json.RawMessage `json:"points"`
}

// Cache persists the point set under a single key of a kvstore.Store.
type Cache struct {
	store kvstore.Store
	key   string
	now   func() time.Time
}

// New returns a cache writing to "<namespace>:<key>". An empty namespace
// uses key as-is.
func New(store kvstore.Store, namespace, key string) *Cache {
	if namespace != "" {
		key = namespace + ":" + key
	}
	return &Cache{store: store, key: key, now: time.Now}
}

// Key returns the primary storage key.
func (c *Cache) Key() string { return c.key }

// BackupPrefix returns the prefix shared by all backup keys.
func (c *Cache) BackupPrefix() string { return c.key + backupSegment }

// BackupKey derives the backup key for t. Colons are replaced so the key
// is safe for file names.
func (c *Cache) BackupKey(t time.Time) string {
	return c.BackupPrefix() + strings.ReplaceAll(t.UTC().Format(time.RFC3339), ":", "-")
}

// maxBackupsPerSecond bounds the "-NNN" suffixes tried for one timestamp.
const maxBackupsPerSecond = 1000

// freeBackupKey returns BackupKey(t), or the first "-NNN" variant of it
// that is not already taken, so an earlier backup is never overwritten.
// The zero-padded suffix keeps backups of one second in write order.
func (c *Cache) freeBackupKey(ctx context.Context, t time.Time) (string, error) {
	base := c.BackupKey(t)
	key := base
	for n := 1; n <= maxBackupsPerSecond; n++ {
		_, err := c.store.Get(ctx, key)
		if errors.Is(err, kvstore.ErrNotFound) {
			return key, nil
		}
		if err != nil {
			return "", fmt.Errorf("check backup key %s: %w", key, err)
		}
		key = fmt.Sprintf("%s-%03d", base, n)
	}
	return "", fmt.Errorf("no free backup key for %s", base)
}

// Save overwrites the stored record.
func (c *Cache) Save(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		metrics.RecordPointCache("save", "error")
		return fmt.Errorf("%w: encode: %w", ErrStorageWriteFailed, err)
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		metrics.RecordPointCache("save", "error")
		return fmt.Errorf("%w: %w", ErrStorageWriteFailed, err)
	}
	metrics.RecordPointCache("save", "ok")
	logging.Ctx(ctx).Debug().
		Str("key", c.key).
		Int("points", len(rec.Points)).
		Int("bytes", len(data)).
		Msg("point cache saved")
	return nil
}

// Load reads the stored record. It returns (nil, nil) when nothing is
// stored. Entries that fail validation are dropped and counted; if none
// survive, or the payload cannot be decoded, the error wraps
// ErrCacheCorrupt.
func (c *Cache) Load(ctx context.Context) (*Record, error) {
	data, err := c.store.Get(ctx, c.key)
	if errors.Is(err, kvstore.ErrNotFound) {
		metrics.RecordPointCache("load", "miss")
		return nil, nil
	}
	if err != nil {
		metrics.RecordPointCache("load", "error")
		return nil, fmt.Errorf("read point cache: %w", err)
	}

	env, err := decode(data)
	if err != nil {
		metrics.RecordPointCache("load", "corrupt")
		return nil, fmt.Errorf("%w: %w", ErrCacheCorrupt, err)
	}

	points := make([]models.DeliveryPoint, 0, len(env.Points))
	dropped := 0
	for _, raw := range env.Points {
		p, ok := parseEntry(raw)
		if !ok {
			dropped++
			continue
		}
		points = append(points, p)
	}

	if dropped > 0 {
		metrics.PointCacheDropped.Add(float64(dropped))
		logging.Ctx(ctx).Warn().
			Str("key", c.key).
			Int("dropped", dropped).
			Int("kept", len(points)).
			Msg("dropped invalid point cache entries")
	}
	if len(points) == 0 {
		metrics.RecordPointCache("load", "corrupt")
		return nil, fmt.Errorf("%w: no valid entries", ErrCacheCorrupt)
	}

	rec := &Record{RunID: env.RunID, GeneratedAt: env.GeneratedAt, Points: points}
	if rec.RunID == "" {
		// Bare-array payloads carry no provenance.
		rec.RunID = uuid.NewString()
		if rec.GeneratedAt.IsZero() {
			rec.GeneratedAt = c.now().UTC()
		}
		logging.Ctx(ctx).Info().
			Str("key", c.key).
			Str("run_id", rec.RunID).
			Msg("point cache has no run id, stamped on load")
	}

	metrics.RecordPointCache("load", "hit")
	return rec, nil
}

// decode accepts the record envelope or a bare array of points.
func decode(data []byte) (*envelope, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var pts []json.RawMessage
		if err := json.Unmarshal(data, &pts); err != nil {
			return nil, err
		}
		return &envelope{Points: pts}, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if env.Points == nil {
		return nil, errors.New("missing points")
	}
	return &env, nil
}

// Invalidate copies the current record to a timestamped backup key, then
// removes the primary key. It returns the backup key, or "" when nothing
// was stored. If the backup cannot be written the primary is kept.
func (c *Cache) Invalidate(ctx context.Context) (string, error) {
	data, err := c.store.Get(ctx, c.key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		metrics.RecordPointCache("invalidate", "error")
		return "", fmt.Errorf("read point cache: %w", err)
	}

	backup, err := c.freeBackupKey(ctx, c.now())
	if err != nil {
		metrics.RecordPointCache("invalidate", "error")
		return "", fmt.Errorf("%w: %w", ErrStorageWriteFailed, err)
	}
	if err := c.store.Set(ctx, backup, data); err != nil {
		metrics.RecordPointCache("invalidate", "error")
		return "", fmt.Errorf("%w: backup %s: %w", ErrStorageWriteFailed, backup, err)
	}
	if err := c.store.Remove(ctx, c.key); err != nil {
		metrics.RecordPointCache("invalidate", "error")
		return backup, fmt.Errorf("remove point cache: %w", err)
	}

	metrics.RecordPointCache("invalidate", "ok")
	logging.Ctx(ctx).Info().
		Str("key", c.key).
		Str("backup", backup).
		Msg("point cache invalidated")
	return backup, nil
}

// Backups lists backup keys, oldest first.
func (c *Cache) Backups(ctx context.Context) ([]string, error) {
	return c.store.Keys(ctx, c.BackupPrefix())
}
