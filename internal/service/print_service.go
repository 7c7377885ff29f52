package service

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"printer-service/internal/entity"
	"printer-service/internal/printing"
	"printer-service/internal/receipt"
	"printer-service/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// PrintService handles order submissions: format, log, print, count.
type PrintService struct {
	counter   repository.CounterRepository
	salesLog  repository.SalesLogRepository
	device    printing.Device
	allowlist []string
}

// NewPrintService creates a new instance of PrintService.
func NewPrintService(counter repository.CounterRepository, salesLog repository.SalesLogRepository, device printing.Device, allowlist []string) *PrintService {
	return &PrintService{
		counter:   counter,
		salesLog:  salesLog,
		device:    device,
		allowlist: allowlist,
	}
}

// PrintOrder formats the order, captures it in the sales log, prints the
// receipt and bumps the daily counter. The log entry is written before the
// printer is touched: losing a printout is acceptable, losing an order is
// not. When printing fails the counter stays untouched and the already
// written entry is kept, so the printed and logged records can diverge.
func (s *PrintService) PrintOrder(req entity.PrintRequest) error {
	doc := receipt.BuildDocument(req.Auswahl, req.Bestellung, s.allowlist)

	if err := s.salesLog.Append(req.Auswahl, req.Bestellung); err != nil {
		logger.Error().Err(err).Int("nr", req.Bestellung.Nr).Msg("Error saving order to sales log")
	}

	session, err := s.device.Open()
	if err != nil {
		logger.Error().Err(err).Int("nr", req.Bestellung.Nr).Msg("Printer unavailable, order is logged but not printed")
		return fmt.Errorf("could not open printer: %w", err)
	}
	// releases the printer even if rendering panics; Close is idempotent
	defer session.Close()

	printing.RenderOrder(session, doc)
	session.Cut()
	if err := session.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing printer session")
	}

	if err := s.counter.Increment(); err != nil {
		logger.Error().Err(err).Msg("Error incrementing order counter")
	}

	logger.Info().Int("nr", req.Bestellung.Nr).Str("auswahl", req.Auswahl).Msg("Order printed")
	return nil
}
