package metrics

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipstash/clipstash/internal/types"
)

func newTestRecorder(t *testing.T) (*Recorder, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "metrics.db")
	rec, err := NewRecorder(RecorderConfig{DBPath: dbPath})
	require.NoError(t, err)
	t.Cleanup(func() { rec.Close() })
	return rec, dbPath
}

func TestRecorderCounters(t *testing.T) {
	rec, _ := newTestRecorder(t)

	rec.IncCaptured(types.KindText)
	rec.IncCaptured(types.KindText)
	rec.IncCaptured(types.KindPDFPath)
	rec.IncDuplicates()
	rec.IncSuppressed()
	rec.IncSuppressed()
	rec.IncSuppressed()

	snap, err := rec.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, uint64(3), snap.Captured)
	assert.Equal(t, uint64(1), snap.Duplicates)
	assert.Equal(t, uint64(3), snap.Suppressed)
	assert.Equal(t, uint64(2), snap.ByKind["text"])
	assert.Equal(t, uint64(1), snap.ByKind["pdf"])
}

func TestRecorderEmptySnapshot(t *testing.T) {
	rec, _ := newTestRecorder(t)

	snap, err := rec.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, uint64(0), snap.Captured)
	assert.Equal(t, uint64(0), snap.Duplicates)
	assert.Equal(t, uint64(0), snap.Suppressed)
	assert.Nil(t, snap.ByKind)
}

func TestRecorderPersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "metrics.db")

	rec, err := NewRecorder(RecorderConfig{DBPath: dbPath})
	require.NoError(t, err)
	rec.IncCaptured(types.KindHTML)
	rec.IncDuplicates()
	require.NoError(t, rec.Close())

	rec, err = NewRecorder(RecorderConfig{DBPath: dbPath})
	require.NoError(t, err)
	defer rec.Close()

	rec.IncCaptured(types.KindHTML)

	snap, err := rec.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, uint64(2), snap.Captured)
	assert.Equal(t, uint64(1), snap.Duplicates)
	assert.Equal(t, uint64(2), snap.ByKind["html"])
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder

	rec.IncCaptured(types.KindText)
	rec.IncDuplicates()
	rec.IncSuppressed()
	assert.NoError(t, rec.Close())

	snap, err := rec.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), snap.Captured)
}
