package entity

import "time"

// PrintRequest is the payload the frontend posts to /print.
type PrintRequest struct {
	Auswahl    string     `json:"auswahl" validate:"required,oneof='vor Ort' 'Abholung' 'Lieferung'"`
	Bestellung Bestellung `json:"bestellung" validate:"required"`
}

// Bestellung is one customer order as sent by the frontend. Field names
// mirror the wire format used by the ordering UI and the sales log files.
type Bestellung struct {
	Nr            int       `json:"nr" validate:"required,min=1"`
	Speisen       []Speise  `json:"speisen" validate:"required,min=1,dive"`
	Gesamtpreis   float64   `json:"gesamtpreis" validate:"required"`
	DiscountRate  float64   `json:"discountRate,omitempty"`
	Eingangszeit  time.Time `json:"eingangszeit" validate:"required"`
	Abholzeit     time.Time `json:"abholzeit" validate:"required"`
	Liefergebuehr float64   `json:"liefergebuehr,omitempty"`
	Name          string    `json:"name,omitempty"`
	Telefon       string    `json:"telefon,omitempty"`
	Strasse       string    `json:"strasse,omitempty"`
	Hausnummer    string    `json:"hausnummer,omitempty"`
	Liefernotiz   string    `json:"liefernotiz,omitempty"`
}

// Speise is one line item: a dish with quantity, condiments and line total.
type Speise struct {
	Menge       int     `json:"menge" validate:"required,min=1"`
	Speise      Dish    `json:"speise"`
	Size        string  `json:"size,omitempty"`
	Notiz       string  `json:"notiz,omitempty"`
	Gesamtpreis float64 `json:"gesamtpreis" validate:"required"`
}

// Dish describes the menu dish of a line item.
type Dish struct {
	Nr      int         `json:"nr" validate:"required,min=1"`
	Name    string      `json:"name" validate:"required"`
	Zutaten []Condiment `json:"zutaten,omitempty"`
	Option  []Condiment `json:"option,omitempty"`
	Sauce   []Condiment `json:"sauce,omitempty"`
}

// Condiment is an ingredient, option or sauce with a quantity. Quantity 0
// means deselected and is never printed.
type Condiment struct {
	Name  string `json:"name"`
	Menge int    `json:"menge"`
}

// LogEntry is one captured order in the per-date sales log file.
type LogEntry struct {
	ID         string     `json:"id"`
	Auswahl    string     `json:"auswahl"`
	Bestellung Bestellung `json:"bestellung"`
	Timestamp  time.Time  `json:"timestamp"`
}

// CounterRecord is the persisted daily order counter.
type CounterRecord struct {
	Date        string `json:"date"`
	OrderNumber int    `json:"orderNumber"`
}

// Channels recognised in the auswahl field. Anything else is ignored by the
// day reports.
const (
	ChannelVorOrt    = "vor Ort"
	ChannelAbholung  = "Abholung"
	ChannelLieferung = "Lieferung"
)
