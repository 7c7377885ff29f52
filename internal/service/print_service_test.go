package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printer-service/internal/entity"
	"printer-service/internal/printing"
	"printer-service/internal/repository"
)

// in-memory stand-ins for the file stores and the printer

type memCounter struct {
	record     entity.CounterRecord
	increments int
}

func (c *memCounter) Read() (entity.CounterRecord, error) { return c.record, nil }
func (c *memCounter) Initialize() error                   { return nil }
func (c *memCounter) Increment() error {
	c.increments++
	c.record.OrderNumber++
	return nil
}

type memSalesLog struct {
	entries   []entity.LogEntry
	appendErr error
	deleted   []string
	deleteErr error
	readErr   error
}

func (l *memSalesLog) Append(auswahl string, b entity.Bestellung) error {
	if l.appendErr != nil {
		return l.appendErr
	}
	l.entries = append(l.entries, entity.LogEntry{Auswahl: auswahl, Bestellung: b, Timestamp: time.Now()})
	return nil
}

func (l *memSalesLog) ReadAll(date string) ([]entity.LogEntry, error) {
	if l.readErr != nil {
		return nil, l.readErr
	}
	return l.entries, nil
}

func (l *memSalesLog) Delete(date string) error {
	if l.deleteErr != nil {
		return l.deleteErr
	}
	l.deleted = append(l.deleted, date)
	return nil
}

type fakeSession struct {
	lines  []string
	cuts   int
	closed bool
}

func (s *fakeSession) Align(pos string)             {}
func (s *fakeSession) TextSize(width, height uint8) {}
func (s *fakeSession) Underline(on bool)            {}
func (s *fakeSession) Line(text string)             { s.lines = append(s.lines, text) }
func (s *fakeSession) Feed(lines int)               {}
func (s *fakeSession) Cut()                         { s.cuts++ }
func (s *fakeSession) Close() error                 { s.closed = true; return nil }

type fakeDevice struct {
	session *fakeSession
	openErr error
	opens   int
}

func (d *fakeDevice) Open() (printing.Session, error) {
	if d.openErr != nil {
		return nil, d.openErr
	}
	d.opens++
	d.session = &fakeSession{}
	return d.session, nil
}

func sampleRequest() entity.PrintRequest {
	return entity.PrintRequest{
		Auswahl: entity.ChannelVorOrt,
		Bestellung: entity.Bestellung{
			Nr: 5,
			Speisen: []entity.Speise{
				{Menge: 2, Speise: entity.Dish{Nr: 3, Name: "Doener"}, Gesamtpreis: 10},
			},
			Gesamtpreis:  10,
			Eingangszeit: time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
			Abholzeit:    time.Date(2026, 8, 31, 12, 30, 0, 0, time.UTC),
		},
	}
}

func TestPrintOrderSuccess(t *testing.T) {
	counter := &memCounter{record: entity.CounterRecord{Date: "2026-08-31", OrderNumber: 5}}
	salesLog := &memSalesLog{}
	device := &fakeDevice{}
	svc := NewPrintService(counter, salesLog, device, nil)

	require.NoError(t, svc.PrintOrder(sampleRequest()))

	assert.Equal(t, 1, counter.increments)
	require.Len(t, salesLog.entries, 1)
	assert.Equal(t, 10.0, salesLog.entries[0].Bestellung.Gesamtpreis, "logged order stays unformatted")
	assert.Contains(t, device.session.lines, "2 x 5.00 EUR = 10.00 EUR")
	assert.Equal(t, 1, device.session.cuts)
	assert.True(t, device.session.closed)
}

func TestPrintOrderPrinterUnavailable(t *testing.T) {
	counter := &memCounter{record: entity.CounterRecord{Date: "2026-08-31", OrderNumber: 5}}
	salesLog := &memSalesLog{}
	device := &fakeDevice{openErr: errors.New("device busy")}
	svc := NewPrintService(counter, salesLog, device, nil)

	err := svc.PrintOrder(sampleRequest())
	require.Error(t, err)

	// the order is captured even though nothing was printed
	assert.Len(t, salesLog.entries, 1)
	assert.Zero(t, counter.increments)
}

type panickingSession struct {
	fakeSession
}

func (s *panickingSession) Line(text string) { panic("printer gone") }

type panickingDevice struct {
	session panickingSession
}

func (d *panickingDevice) Open() (printing.Session, error) { return &d.session, nil }

func TestPrintOrderClosesSessionOnPanic(t *testing.T) {
	counter := &memCounter{record: entity.CounterRecord{Date: "2026-08-31", OrderNumber: 5}}
	salesLog := &memSalesLog{}
	device := &panickingDevice{}
	svc := NewPrintService(counter, salesLog, device, nil)

	func() {
		defer func() { recover() }()
		svc.PrintOrder(sampleRequest())
	}()

	assert.True(t, device.session.closed, "session must be released when rendering panics")
	assert.Zero(t, counter.increments)
}

func TestPrintOrderLogFailureStillPrints(t *testing.T) {
	counter := &memCounter{record: entity.CounterRecord{Date: "2026-08-31", OrderNumber: 5}}
	salesLog := &memSalesLog{appendErr: errors.New("disk full")}
	device := &fakeDevice{}
	svc := NewPrintService(counter, salesLog, device, nil)

	require.NoError(t, svc.PrintOrder(sampleRequest()))
	assert.Equal(t, 1, counter.increments)
	assert.Equal(t, 1, device.session.cuts)
}

func TestPrintRevenueClosesDay(t *testing.T) {
	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	salesLog := &memSalesLog{entries: []entity.LogEntry{
		{Auswahl: entity.ChannelVorOrt, Bestellung: entity.Bestellung{Gesamtpreis: 10, Eingangszeit: at}},
		{Auswahl: entity.ChannelLieferung, Bestellung: entity.Bestellung{Gesamtpreis: 15, Eingangszeit: at}},
	}}
	device := &fakeDevice{}
	svc := NewReportService(salesLog, device)
	svc.now = func() time.Time { return at }

	warning, err := svc.PrintRevenue()
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, []string{"2026-08-31"}, salesLog.deleted)

	// revenue summary and item report share one session
	assert.Equal(t, 1, device.opens)
	assert.Equal(t, 1, device.session.cuts)
	assert.Contains(t, device.session.lines, "Tagesumsatz")
	assert.Contains(t, device.session.lines, "Tagesbericht")
	assert.Contains(t, device.session.lines, "Umsatz: 25.00 EUR")
}

func TestPrintRevenueMissingLog(t *testing.T) {
	salesLog := &memSalesLog{readErr: repository.ErrNoSalesData}
	device := &fakeDevice{}
	svc := NewReportService(salesLog, device)

	_, err := svc.PrintRevenue()
	assert.ErrorIs(t, err, repository.ErrNoSalesData)
	assert.Zero(t, device.opens, "nothing printed when sales data is missing")
}

func TestPrintRevenueDeleteFailureIsWarning(t *testing.T) {
	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	salesLog := &memSalesLog{
		entries:   []entity.LogEntry{{Auswahl: entity.ChannelVorOrt, Bestellung: entity.Bestellung{Gesamtpreis: 10, Eingangszeit: at}}},
		deleteErr: errors.New("permission denied"),
	}
	device := &fakeDevice{}
	svc := NewReportService(salesLog, device)
	svc.now = func() time.Time { return at }

	warning, err := svc.PrintRevenue()
	require.NoError(t, err, "a failed deletion does not roll back the print")
	assert.NotEmpty(t, warning)
}

func TestPrintItemReportKeepsDayOpen(t *testing.T) {
	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	salesLog := &memSalesLog{entries: []entity.LogEntry{
		{Auswahl: entity.ChannelVorOrt, Bestellung: entity.Bestellung{
			Speisen:      []entity.Speise{{Menge: 2, Speise: entity.Dish{Nr: 3, Name: "Doener"}}},
			Gesamtpreis:  10,
			Eingangszeit: at,
		}},
	}}
	device := &fakeDevice{}
	svc := NewReportService(salesLog, device)
	svc.now = func() time.Time { return at }

	require.NoError(t, svc.PrintItemReport())
	assert.Empty(t, salesLog.deleted)
	assert.Contains(t, device.session.lines, "Nr.3: 2x")
}
