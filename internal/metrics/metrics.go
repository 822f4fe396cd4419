// Package metrics persists capture counters in a small bolt database
// beside the history log. Counters are advisory: increment failures are
// logged, never surfaced.
package metrics

import (
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/clipstash/clipstash/internal/types"
)

const (
	countersBucket = "counters"
	kindsBucket    = "kinds"
)

// Counter keys in the counters bucket.
const (
	keyCaptured   = "captured"
	keyDuplicates = "duplicates"
	keySuppressed = "suppressed"
)

// Recorder accumulates capture counters. All methods are safe on a nil
// receiver, so callers that run without metrics skip the wiring.
type Recorder struct {
	db     *bbolt.DB
	logger *zap.Logger
}

// RecorderConfig holds configuration for Recorder initialization.
type RecorderConfig struct {
	DBPath string
	Logger *zap.Logger
}

// NewRecorder opens (creating if absent) the metrics database.
func NewRecorder(config RecorderConfig) (*Recorder, error) {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := bbolt.Open(config.DBPath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open metrics database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{countersBucket, kindsBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Recorder{db: db, logger: logger}, nil
}

// Close releases the database.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	return r.db.Close()
}

// IncCaptured counts one stored capture of the given kind.
func (r *Recorder) IncCaptured(kind types.ContentKind) {
	if r == nil {
		return
	}
	err := r.db.Update(func(tx *bbolt.Tx) error {
		if err := incrementKey(tx.Bucket([]byte(countersBucket)), keyCaptured); err != nil {
			return err
		}
		return incrementKey(tx.Bucket([]byte(kindsBucket)), string(kind))
	})
	if err != nil {
		r.logger.Warn("Failed to record capture", zap.Error(err))
	}
}

// IncDuplicates counts one capture suppressed by deduplication.
func (r *Recorder) IncDuplicates() {
	r.increment(keyDuplicates)
}

// IncSuppressed counts one self-triggered clipboard change swallowed by
// the echo filter.
func (r *Recorder) IncSuppressed() {
	r.increment(keySuppressed)
}

// Snapshot is a point-in-time view of the counters.
type Snapshot struct {
	Captured   uint64            `json:"captured"`
	Duplicates uint64            `json:"duplicates"`
	Suppressed uint64            `json:"suppressed"`
	ByKind     map[string]uint64 `json:"by_kind,omitempty"`
}

// Snapshot reads every counter.
func (r *Recorder) Snapshot() (*Snapshot, error) {
	if r == nil {
		return &Snapshot{}, nil
	}

	snap := &Snapshot{ByKind: make(map[string]uint64)}
	err := r.db.View(func(tx *bbolt.Tx) error {
		counters := tx.Bucket([]byte(countersBucket))
		snap.Captured = readKey(counters, keyCaptured)
		snap.Duplicates = readKey(counters, keyDuplicates)
		snap.Suppressed = readKey(counters, keySuppressed)

		return tx.Bucket([]byte(kindsBucket)).ForEach(func(k, v []byte) error {
			if len(v) == 8 {
				snap.ByKind[string(k)] = binary.BigEndian.Uint64(v)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read metrics: %w", err)
	}
	if len(snap.ByKind) == 0 {
		snap.ByKind = nil
	}
	return snap, nil
}

func (r *Recorder) increment(key string) {
	if r == nil {
		return
	}
	err := r.db.Update(func(tx *bbolt.Tx) error {
		return incrementKey(tx.Bucket([]byte(countersBucket)), key)
	})
	if err != nil {
		r.logger.Warn("Failed to increment counter",
			zap.String("counter", key),
			zap.Error(err))
	}
}

func incrementKey(b *bbolt.Bucket, key string) error {
	value := uint64(0)
	if v := b.Get([]byte(key)); len(v) == 8 {
		value = binary.BigEndian.Uint64(v)
	}
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, value+1)
	return b.Put([]byte(key), buf)
}

func readKey(b *bbolt.Bucket, key string) uint64 {
	if v := b.Get([]byte(key)); len(v) == 8 {
		return binary.BigEndian.Uint64(v)
	}
	return 0
}
