package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"printer-service/internal/entity"
	"printer-service/internal/repository"
	"printer-service/internal/service"
)

type PrintHandler struct {
	counter       repository.CounterRepository
	printService  *service.PrintService
	reportService *service.ReportService
}

func NewPrintHandler(counter repository.CounterRepository, printService *service.PrintService, reportService *service.ReportService) *PrintHandler {
	return &PrintHandler{
		counter:       counter,
		printService:  printService,
		reportService: reportService,
	}
}

// RequestValidator plugs validator/v10 into echo's Bind/Validate cycle.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// RegisterRoutes wires the HTTP surface onto the echo instance.
func (h *PrintHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/order-number", h.OrderNumber)
	e.POST("/print", h.PrintOrder)
	e.GET("/print-tagesumsatz", h.PrintRevenue)
	e.GET("/print-tagesbericht", h.PrintItemReport)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"service": "printer-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})
}

// OrderNumber returns the current daily order number.
func (h *PrintHandler) OrderNumber(c echo.Context) error {
	record, err := h.counter.Read()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"success": false, "error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"orderNumber": record.OrderNumber})
}

// PrintOrder accepts an order payload, prints the receipt and logs the sale.
func (h *PrintHandler) PrintOrder(c echo.Context) error {
	req := entity.PrintRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"success": false, "error": "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"success": false, "error": err.Error()})
	}

	if err := h.printService.PrintOrder(req); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"success": false, "error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// PrintRevenue prints the Tagesumsatz receipt and closes the day.
func (h *PrintHandler) PrintRevenue(c echo.Context) error {
	warning, err := h.reportService.PrintRevenue()
	if err != nil {
		if errors.Is(err, repository.ErrNoSalesData) {
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Fehler beim Laden der Umsatzdaten"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"success": false, "message": err.Error()})
	}
	if warning != "" {
		return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "message": warning})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// PrintItemReport prints the Tagesbericht receipt.
func (h *PrintHandler) PrintItemReport(c echo.Context) error {
	if err := h.reportService.PrintItemReport(); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"success": false, "error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}
