package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"printer-service/internal/entity"
	"printer-service/internal/receipt"
)

// ChannelCounts holds order counts per fulfillment channel.
type ChannelCounts struct {
	VorOrt    int
	Abholung  int
	Lieferung int
}

// RevenueSummary is the day's aggregate for the Tagesumsatz printout.
type RevenueSummary struct {
	Revenue          decimal.Decimal
	Counts           ChannelCounts
	TotalOrders      int
	PercentVorOrt    int
	PercentAbholung  int
	PercentLieferung int
	// FirstOrder and LastOrder carry the receipt time of the first and last
	// entry in stored array order, not re-sorted by time. Late-arriving
	// entries appended out of chronological order skew these markers; staff
	// read them as arrival order, so they stay that way.
	FirstOrder string
	LastOrder  string
}

// DishCount is one row of the best-seller ranking.
type DishCount struct {
	Nr    int
	Menge int
}

// Summarize computes the revenue aggregate over a day's entries. Entries
// with an unrecognised channel count toward revenue but are excluded from
// all three channel buckets and from TotalOrders.
func Summarize(entries []entity.LogEntry) RevenueSummary {
	s := RevenueSummary{Revenue: decimal.Zero}

	for _, e := range entries {
		s.Revenue = s.Revenue.Add(decimal.NewFromFloat(e.Bestellung.Gesamtpreis))
		switch e.Auswahl {
		case entity.ChannelVorOrt:
			s.Counts.VorOrt++
		case entity.ChannelAbholung:
			s.Counts.Abholung++
		case entity.ChannelLieferung:
			s.Counts.Lieferung++
		}
	}
	s.TotalOrders = s.Counts.VorOrt + s.Counts.Abholung + s.Counts.Lieferung

	// A day with zero orders must not divide; percentages stay 0.
	if s.TotalOrders > 0 {
		s.PercentVorOrt = percent(s.Counts.VorOrt, s.TotalOrders)
		s.PercentAbholung = percent(s.Counts.Abholung, s.TotalOrders)
		s.PercentLieferung = percent(s.Counts.Lieferung, s.TotalOrders)
	}

	s.FirstOrder, s.LastOrder = CompletenessMarkers(entries)
	return s
}

// BestSellers accumulates per-dish quantities across all line items and
// ranks them by quantity, highest first. Equal quantities keep their
// first-encountered order so repeated prints are deterministic.
func BestSellers(entries []entity.LogEntry) []DishCount {
	totals := make(map[int]int)
	order := make([]int, 0)

	for _, e := range entries {
		for _, s := range e.Bestellung.Speisen {
			nr := s.Speise.Nr
			if _, seen := totals[nr]; !seen {
				order = append(order, nr)
			}
			totals[nr] += s.Menge
		}
	}

	ranking := make([]DishCount, 0, len(order))
	for _, nr := range order {
		ranking = append(ranking, DishCount{Nr: nr, Menge: totals[nr]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Menge > ranking[j].Menge
	})
	return ranking
}

// CompletenessMarkers returns the formatted receipt times of the first and
// last entry as stored. Empty days yield empty markers.
func CompletenessMarkers(entries []entity.LogEntry) (first, last string) {
	if len(entries) == 0 {
		return "", ""
	}
	first = receipt.FormatDateTime(entries[0].Bestellung.Eingangszeit)
	last = receipt.FormatDateTime(entries[len(entries)-1].Bestellung.Eingangszeit)
	return first, last
}

func percent(count, total int) int {
	return int(decimal.NewFromInt(int64(count)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(0).IntPart())
}
