package receipt

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"printer-service/internal/entity"
)

// Item is one print-ready line item.
type Item struct {
	Menge      int
	Nr         int
	Name       string
	Klein      bool // size "klein" is printed underlined before the name
	Condiments string
	Notiz      string
	PriceText  string
}

// Delivery is the print-ready delivery block. Empty fields are omitted from
// the printout entirely.
type Delivery struct {
	Name    string
	Telefon string
	Adresse string
	Hinweis string
	FeeText string
}

// Document is a complete order receipt, composed from an order at print
// time. It carries text only; the printing layer decides fonts and feeds.
type Document struct {
	Header       string
	Sofort       bool
	Von          string
	Zu           string
	Items        []Item
	DiscountText string
	FeeText      string
	TotalText    string
	Delivery     *Delivery
}

// BuildDocument shapes an order into a printable receipt. The allowlist,
// when non-empty, restricts which ingredients appear in the condiment
// summary; options and sauces are never restricted.
func BuildDocument(auswahl string, b entity.Bestellung, allowlist []string) Document {
	doc := Document{
		Header: fmt.Sprintf("%s Nr.%d", auswahl, b.Nr),
		Items:  FormatItems(b.Speisen, allowlist),
	}
	if auswahl == entity.ChannelLieferung {
		doc.Header = fmt.Sprintf("%s %s", auswahl, FormatTime(b.Abholzeit))
	}

	eingang := FormatTime(b.Eingangszeit)
	abhol := FormatTime(b.Abholzeit)
	if eingang == abhol {
		doc.Sofort = true
	} else {
		doc.Von = eingang
		doc.Zu = abhol
	}

	subtotal := decimal.NewFromFloat(b.Gesamtpreis)
	total := subtotal
	if b.DiscountRate != 0 {
		discount := subtotal.Mul(decimal.NewFromFloat(b.DiscountRate)).Div(decimal.NewFromInt(100))
		total = total.Sub(discount)
		doc.DiscountText = fmt.Sprintf("Rabatt %s%%: -%s", decimal.NewFromFloat(b.DiscountRate).String(), Euro(discount))
	}
	if b.Liefergebuehr != 0 {
		fee := decimal.NewFromFloat(b.Liefergebuehr)
		total = total.Add(fee)
		doc.FeeText = fmt.Sprintf("Liefergebuehr: %s", Euro(fee))
	}
	doc.TotalText = fmt.Sprintf("Total: %s", Euro(total))

	if auswahl != entity.ChannelVorOrt {
		delivery := FormatDelivery(b)
		doc.Delivery = &delivery
	}
	return doc
}

// FormatItems shapes every line item of an order.
func FormatItems(speisen []entity.Speise, allowlist []string) []Item {
	items := make([]Item, 0, len(speisen))
	for _, s := range speisen {
		parts := condimentList(filterAllowed(s.Speise.Zutaten, allowlist))
		parts = append(parts, condimentList(s.Speise.Option)...)
		parts = append(parts, condimentList(s.Speise.Sauce)...)

		items = append(items, Item{
			Menge:      s.Menge,
			Nr:         s.Speise.Nr,
			Name:       s.Speise.Name,
			Klein:      s.Size == "klein",
			Condiments: strings.Join(parts, ", "),
			Notiz:      s.Notiz,
			PriceText:  PriceText(s.Menge, s.Gesamtpreis),
		})
	}
	return items
}

// PriceText renders the price line of a line item. Quantity one prints the
// bare total; larger quantities show the unit price breakdown.
func PriceText(menge int, gesamtpreis float64) string {
	total := decimal.NewFromFloat(gesamtpreis)
	if menge < 2 {
		return Euro(total)
	}
	unit := total.Div(decimal.NewFromInt(int64(menge))).Round(2)
	return fmt.Sprintf("%d x %s = %s", menge, Euro(unit), Euro(total))
}

// FormatDelivery shapes the delivery details of an order.
func FormatDelivery(b entity.Bestellung) Delivery {
	d := Delivery{
		Name:    b.Name,
		Telefon: b.Telefon,
		Adresse: ComposeAddress(b.Strasse, b.Hausnummer),
		Hinweis: b.Liefernotiz,
	}
	if b.Liefergebuehr != 0 {
		d.FeeText = Euro(decimal.NewFromFloat(b.Liefergebuehr))
	}
	return d
}

// ComposeAddress rebuilds "Street House#, PostalCode" from the combined
// "street, postal-code" field the frontend delivers. Without a house number
// or a comma the raw street string is used as-is.
func ComposeAddress(strasse, hausnummer string) string {
	if strasse == "" {
		return ""
	}
	if hausnummer == "" || !strings.Contains(strasse, ",") {
		return strasse
	}
	street, plz, _ := strings.Cut(strasse, ",")
	return fmt.Sprintf("%s %s, %s", strings.TrimSpace(street), strings.TrimSpace(hausnummer), strings.TrimSpace(plz))
}

// Euro formats an amount to two decimals with the fixed currency suffix.
func Euro(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " EUR"
}

// FormatTime prints a wall-clock time the way the receipts do: unpadded
// hour, padded minutes. Receipts always show the host's wall clock, no
// matter which UTC offset the payload carried.
func FormatTime(t time.Time) string {
	t = t.In(time.Local)
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}

// FormatDateTime prints a full timestamp for the day reports, in host
// wall-clock time.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format("02.01.2006 15:04")
}

// FormatDate prints a calendar date for report headers.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format("02.01.2006")
}

func condimentList(condiments []entity.Condiment) []string {
	parts := make([]string, 0, len(condiments))
	for _, c := range condiments {
		switch {
		case c.Menge <= 0:
			// deselected, never printed
		case c.Menge == 1:
			parts = append(parts, c.Name)
		default:
			parts = append(parts, fmt.Sprintf("%dx %s", c.Menge, c.Name))
		}
	}
	return parts
}

func filterAllowed(condiments []entity.Condiment, allowlist []string) []entity.Condiment {
	if len(allowlist) == 0 {
		return condiments
	}
	allowed := make([]entity.Condiment, 0, len(condiments))
	for _, c := range condiments {
		if slices.Contains(allowlist, c.Name) {
			allowed = append(allowed, c)
		}
	}
	return allowed
}
