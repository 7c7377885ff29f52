package service

import (
	"fmt"
	"time"

	"printer-service/internal/printing"
	"printer-service/internal/report"
	"printer-service/internal/repository"
)

// ReportService prints the end-of-day receipts from the sales log.
type ReportService struct {
	salesLog repository.SalesLogRepository
	device   printing.Device
	now      func() time.Time
}

// NewReportService creates a new instance of ReportService.
func NewReportService(salesLog repository.SalesLogRepository, device printing.Device) *ReportService {
	return &ReportService{salesLog: salesLog, device: device, now: time.Now}
}

// PrintRevenue prints the revenue summary and the item report in one
// printer session, then closes the day by deleting the log file. A failed
// deletion does not roll back the print; it is reported as a warning.
func (s *ReportService) PrintRevenue() (warning string, err error) {
	date := s.now().Format("2006-01-02")
	entries, err := s.salesLog.ReadAll(date)
	if err != nil {
		return "", err
	}

	sum := report.Summarize(entries)
	ranking := report.BestSellers(entries)

	session, err := s.device.Open()
	if err != nil {
		return "", fmt.Errorf("could not open printer: %w", err)
	}
	// releases the printer even if rendering panics; Close is idempotent
	defer session.Close()

	printing.RenderRevenue(session, s.now(), sum)
	printing.RenderItemReport(session, s.now(), ranking, sum.FirstOrder, sum.LastOrder)
	session.Cut()
	if err := session.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing printer session")
	}

	if err := s.salesLog.Delete(date); err != nil {
		logger.Error().Err(err).Str("date", date).Msg("Error deleting sales log after revenue print")
		return "Tagesumsatz gedruckt, Umsatzliste konnte nicht geloescht werden", nil
	}

	logger.Info().Str("date", date).Int("orders", sum.TotalOrders).Msg("Revenue printed, day closed")
	return "", nil
}

// PrintItemReport prints the best-seller report on its own without closing
// the day.
func (s *ReportService) PrintItemReport() error {
	date := s.now().Format("2006-01-02")
	entries, err := s.salesLog.ReadAll(date)
	if err != nil {
		return err
	}

	ranking := report.BestSellers(entries)
	first, last := report.CompletenessMarkers(entries)

	session, err := s.device.Open()
	if err != nil {
		return fmt.Errorf("could not open printer: %w", err)
	}
	defer session.Close()

	printing.RenderItemReport(session, s.now(), ranking, first, last)
	session.Cut()
	if err := session.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing printer session")
	}

	logger.Info().Str("date", date).Int("dishes", len(ranking)).Msg("Item report printed")
	return nil
}
