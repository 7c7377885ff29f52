package repository

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"printer-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// CounterRepository manages the persisted daily order number.
type CounterRepository interface {
	Read() (entity.CounterRecord, error)
	Initialize() error
	Increment() error
}

// FileCounterRepository keeps the counter in a single JSON file. All
// read-modify-write cycles run under one mutex; two concurrent /print
// requests must not lose an increment.
type FileCounterRepository struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

func NewFileCounterRepository(path string) *FileCounterRepository {
	return &FileCounterRepository{path: path, now: time.Now}
}

// Read returns the persisted record. A missing or unreadable file is treated
// as absence: the counter bootstraps itself to {today, 1} and persists that
// before returning.
func (r *FileCounterRepository) Read() (entity.CounterRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read(), nil
}

// Initialize resets the counter to {today, 1} when the stored date is stale.
// Called once at process start.
func (r *FileCounterRepository) Initialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := r.read()
	if record.Date != r.today() {
		record = entity.CounterRecord{Date: r.today(), OrderNumber: 1}
		r.write(record)
	}
	return nil
}

// Increment bumps the order number, resetting to {today, 1} on date rollover.
// Write errors are logged, not surfaced: a failed counter write must not fail
// an already printed order.
func (r *FileCounterRepository) Increment() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := r.read()
	if record.Date != r.today() {
		record = entity.CounterRecord{Date: r.today(), OrderNumber: 1}
	} else {
		record.OrderNumber++
	}
	r.write(record)
	return nil
}

func (r *FileCounterRepository) today() string {
	return r.now().Format("2006-01-02")
}

func (r *FileCounterRepository) read() entity.CounterRecord {
	initial := entity.CounterRecord{Date: r.today(), OrderNumber: 1}

	data, err := os.ReadFile(r.path)
	if err != nil {
		r.write(initial)
		return initial
	}
	var record entity.CounterRecord
	if err := json.Unmarshal(data, &record); err != nil {
		logger.Error().Err(err).Str("file", r.path).Msg("Counter file unreadable, bootstrapping fresh record")
		r.write(initial)
		return initial
	}
	return record
}

func (r *FileCounterRepository) write(record entity.CounterRecord) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		logger.Error().Err(err).Msg("Error encoding counter record")
		return
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		logger.Error().Err(err).Str("file", r.path).Msg("Error writing counter file")
	}
}
