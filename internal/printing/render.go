package printing

import (
	"fmt"
	"time"

	"printer-service/internal/receipt"
	"printer-service/internal/report"
)

const (
	stars     = "********************************"
	separator = "==============================="
)

// RenderOrder emits an order receipt onto an open session. Section order is
// fixed: header, time window, line items, totals block, delivery block.
func RenderOrder(s Session, doc receipt.Document) {
	s.Feed(5)
	s.Align(AlignCenter)
	s.TextSize(2, 2)
	s.Line(doc.Header)
	s.Feed(2)

	s.TextSize(1, 1)
	s.Line(stars)
	if doc.Sofort {
		s.Line("sofort")
	} else {
		s.Line(fmt.Sprintf("von: %s Uhr", doc.Von))
		s.Line(fmt.Sprintf("zu: %s Uhr", doc.Zu))
	}
	s.Line(stars)
	s.Feed(1)

	s.Align(AlignLeft)
	for _, item := range doc.Items {
		s.TextSize(1, 1)
		s.Line(fmt.Sprintf("%dx Nr.%d", item.Menge, item.Nr))
		s.TextSize(1, 2)
		if item.Klein {
			s.Underline(true)
			s.Line("klein " + item.Name)
			s.Underline(false)
		} else {
			s.Line(item.Name)
		}
		s.TextSize(1, 1)
		if item.Condiments != "" {
			s.Line(item.Condiments)
		}
		if item.Notiz != "" {
			s.Underline(true)
			s.Line("HINWEIS: " + item.Notiz)
			s.Underline(false)
		}
		s.Line(item.PriceText)
		s.Feed(2)
	}

	s.Feed(1)
	s.Align(AlignCenter)
	s.TextSize(1, 2)
	if doc.DiscountText != "" {
		s.Line(doc.DiscountText)
	}
	if doc.FeeText != "" {
		s.Line(doc.FeeText)
	}
	s.Line(doc.TotalText)
	s.Feed(2)

	if doc.Delivery != nil {
		renderDelivery(s, *doc.Delivery)
	}
	s.Feed(2)
}

func renderDelivery(s Session, d receipt.Delivery) {
	s.Feed(1)
	s.Align(AlignLeft)
	if d.Name != "" {
		s.TextSize(1, 1)
		s.Line("Name:")
		s.TextSize(1, 2)
		s.Line(d.Name)
	}
	if d.Telefon != "" {
		s.TextSize(1, 1)
		s.Line("Telefon:")
		s.TextSize(1, 2)
		s.Line(d.Telefon)
	}
	if d.Adresse != "" {
		s.TextSize(1, 1)
		s.Line("Strasse:")
		s.TextSize(1, 2)
		s.Line(d.Adresse)
	}
	if d.Hinweis != "" {
		s.TextSize(1, 1)
		s.Line("Hinweis:")
		s.TextSize(1, 2)
		s.Line(d.Hinweis)
	}
	if d.FeeText != "" {
		s.TextSize(1, 1)
		s.Line("Liefergebuehr:")
		s.TextSize(1, 2)
		s.Line(d.FeeText)
	}
}

// RenderRevenue emits the Tagesumsatz summary.
func RenderRevenue(s Session, printedAt time.Time, sum report.RevenueSummary) {
	renderReportHeader(s, "Tagesumsatz", printedAt)

	s.Align(AlignLeft)
	s.Feed(1)
	s.Line(fmt.Sprintf("Umsatz: %s", receipt.Euro(sum.Revenue)))
	s.Feed(1)
	s.Line(fmt.Sprintf("Gesamt: %d Bestellungen", sum.TotalOrders))
	s.Line(separator)
	s.Line(fmt.Sprintf("Vor Ort: %d", sum.Counts.VorOrt))
	s.Line(fmt.Sprintf("Abholung: %d", sum.Counts.Abholung))
	s.Line(fmt.Sprintf("Lieferung: %d", sum.Counts.Lieferung))
	s.Feed(1)
	s.Line("Umsatzverteilung")
	s.Line(separator)
	s.Line(fmt.Sprintf("Vor Ort: %d%%", sum.PercentVorOrt))
	s.Line(fmt.Sprintf("Abholung: %d%%", sum.PercentAbholung))
	s.Line(fmt.Sprintf("Lieferung: %d%%", sum.PercentLieferung))
	s.Feed(1)
	renderCompleteness(s, sum.FirstOrder, sum.LastOrder)
	s.Feed(2)
}

// RenderItemReport emits the Tagesbericht best-seller ranking.
func RenderItemReport(s Session, printedAt time.Time, ranking []report.DishCount, firstOrder, lastOrder string) {
	renderReportHeader(s, "Tagesbericht", printedAt)

	s.Align(AlignLeft)
	s.Line("Speise Charts")
	s.Line(separator)
	for _, dish := range ranking {
		s.Line(fmt.Sprintf("Nr.%d: %dx", dish.Nr, dish.Menge))
	}
	s.Feed(2)
	renderCompleteness(s, firstOrder, lastOrder)
	s.Feed(2)
}

func renderReportHeader(s Session, title string, printedAt time.Time) {
	s.Align(AlignCenter)
	s.TextSize(1, 1)
	s.Line(stars)
	s.TextSize(2, 2)
	s.Line(title)
	s.TextSize(1, 2)
	s.Line(receipt.FormatDate(printedAt))
	s.TextSize(1, 1)
	s.Line(fmt.Sprintf("Stand: %s Uhr", receipt.FormatTime(printedAt)))
	s.Line(stars)
	s.Feed(1)
}

func renderCompleteness(s Session, first, last string) {
	if first == "" {
		first = "-"
	}
	if last == "" {
		last = "-"
	}
	s.Line("Vollstaendigkeitscheck")
	s.Line(separator)
	s.Line("Erste Bestellung:")
	s.Line(fmt.Sprintf(" %s Uhr", first))
	s.Line("Letzte Bestellung:")
	s.Line(fmt.Sprintf(" %s Uhr", last))
}
