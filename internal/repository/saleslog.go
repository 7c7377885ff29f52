package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"printer-service/internal/entity"
)

// ErrNoSalesData marks a day without a sales log file. Callers turn this
// into a request failure, not a crash.
var ErrNoSalesData = errors.New("no sales data for date")

// SalesLogRepository is the append-only per-date order log.
type SalesLogRepository interface {
	Append(auswahl string, bestellung entity.Bestellung) error
	ReadAll(date string) ([]entity.LogEntry, error)
	Delete(date string) error
}

// FileSalesLogRepository stores one JSON array per calendar date under a
// data directory, matching the umsatz-YYYY-MM-DD.json files the reports
// read back. Single-process usage; the mutex serialises the
// read-modify-write against concurrent submissions.
type FileSalesLogRepository struct {
	dir string
	now func() time.Time
	mu  sync.Mutex
}

func NewFileSalesLogRepository(dir string) *FileSalesLogRepository {
	return &FileSalesLogRepository{dir: dir, now: time.Now}
}

// Append captures an order into today's log. A missing file counts as an
// empty list; the whole file is rewritten with the entry added.
func (r *FileSalesLogRepository) Append(auswahl string, bestellung entity.Bestellung) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	capturedAt := r.now()
	date := capturedAt.Format("2006-01-02")

	entries, err := r.readFile(date)
	if err != nil && !errors.Is(err, ErrNoSalesData) {
		return err
	}

	entries = append(entries, entity.LogEntry{
		ID:         uuid.NewString(),
		Auswahl:    auswahl,
		Bestellung: bestellung,
		Timestamp:  capturedAt.UTC(),
	})

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode sales log: %w", err)
	}
	if err := os.WriteFile(r.file(date), data, 0o644); err != nil {
		return fmt.Errorf("could not write sales log: %w", err)
	}

	logger.Info().Str("date", date).Int("orders", len(entries)).Msg("Order saved to sales log")
	return nil
}

// ReadAll returns the captured orders for a date in file order.
func (r *FileSalesLogRepository) ReadAll(date string) ([]entity.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readFile(date)
}

// Delete removes a day's log file. Used by the revenue close flow after a
// successful print.
func (r *FileSalesLogRepository) Delete(date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.file(date)); err != nil {
		return fmt.Errorf("could not delete sales log for %s: %w", date, err)
	}
	return nil
}

func (r *FileSalesLogRepository) file(date string) string {
	return filepath.Join(r.dir, fmt.Sprintf("umsatz-%s.json", date))
}

func (r *FileSalesLogRepository) readFile(date string) ([]entity.LogEntry, error) {
	data, err := os.ReadFile(r.file(date))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoSalesData, date)
		}
		return nil, fmt.Errorf("could not read sales log for %s: %w", date, err)
	}

	var entries []entity.LogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("could not parse sales log for %s: %w", date, err)
	}
	return entries, nil
}
