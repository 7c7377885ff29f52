package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printer-service/internal/entity"
)

func newTestCounter(t *testing.T, now time.Time) *FileCounterRepository {
	t.Helper()
	r := NewFileCounterRepository(filepath.Join(t.TempDir(), "orderCounter.json"))
	r.now = func() time.Time { return now }
	return r
}

func writeRecord(t *testing.T, path string, record entity.CounterRecord) {
	t.Helper()
	data, err := json.Marshal(record)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestCounterBootstrapsMissingFile(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	r := newTestCounter(t, now)

	record, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, entity.CounterRecord{Date: "2026-08-31", OrderNumber: 1}, record)

	// the bootstrap value was persisted
	_, err = os.Stat(r.path)
	assert.NoError(t, err)
}

func TestCounterBootstrapsCorruptFile(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	r := newTestCounter(t, now)
	require.NoError(t, os.WriteFile(r.path, []byte("{not json"), 0o644))

	record, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, entity.CounterRecord{Date: "2026-08-31", OrderNumber: 1}, record)
}

func TestIncrementSameDay(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	r := newTestCounter(t, now)
	writeRecord(t, r.path, entity.CounterRecord{Date: "2026-08-31", OrderNumber: 5})

	require.NoError(t, r.Increment())

	record, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, 6, record.OrderNumber)
}

func TestIncrementResetsOnRollover(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	r := newTestCounter(t, now)
	writeRecord(t, r.path, entity.CounterRecord{Date: "2026-08-30", OrderNumber: 42})

	require.NoError(t, r.Increment())

	record, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, entity.CounterRecord{Date: "2026-08-31", OrderNumber: 1}, record)
}

func TestInitializeResetsStaleDate(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	r := newTestCounter(t, now)
	writeRecord(t, r.path, entity.CounterRecord{Date: "2026-08-30", OrderNumber: 17})

	require.NoError(t, r.Initialize())

	record, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, entity.CounterRecord{Date: "2026-08-31", OrderNumber: 1}, record)
}

func TestInitializeKeepsCurrentDate(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	r := newTestCounter(t, now)
	writeRecord(t, r.path, entity.CounterRecord{Date: "2026-08-31", OrderNumber: 17})

	require.NoError(t, r.Initialize())

	record, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, 17, record.OrderNumber)
}
