package roster

import "github.com/shopspring/decimal"

var halfDay = decimal.NewFromFloat(0.5)

// HoursBreakdown categorizes one day-cell's hours.
type HoursBreakdown struct {
	Trabajo     decimal.Decimal // worked hours from Shift entries, after breaks
	Licencia    decimal.Decimal // leave hours
	MedioFranco decimal.Decimal // hours covered by a half rest day
	RestDays    decimal.Decimal // 1 per Franco, 0.5 per cell with a MedioFranco
	Incomplete  int             // Shift entries skipped for lacking explicit times
}

// Total returns Trabajo + Licencia + MedioFranco.
func (b HoursBreakdown) Total() decimal.Decimal {
	return b.Trabajo.Add(b.Licencia).Add(b.MedioFranco)
}

// Add merges two breakdowns.
func (b HoursBreakdown) Add(o HoursBreakdown) HoursBreakdown {
	return HoursBreakdown{
		Trabajo:     b.Trabajo.Add(o.Trabajo),
		Licencia:    b.Licencia.Add(o.Licencia),
		MedioFranco: b.MedioFranco.Add(o.MedioFranco),
		RestDays:    b.RestDays.Add(o.RestDays),
		Incomplete:  b.Incomplete + o.Incomplete,
	}
}

// Breakdown aggregates a day's assignments into categorized totals.
//
// Shift entries count only their own explicit times; an entry without them is
// skipped and counted in Incomplete rather than approximated from its
// template. MedioFranco and Licencia count their raw interval (no break).
// The half rest day is counted once per cell, however many MedioFranco pieces
// a leave split left behind. Nota contributes nothing.
func Breakdown(assignments []Assignment, cfg WorkingHoursConfig) HoursBreakdown {
	b := HoursBreakdown{
		Trabajo:     decimal.Zero,
		Licencia:    decimal.Zero,
		MedioFranco: decimal.Zero,
		RestDays:    decimal.Zero,
	}
	medioFranco := false
	for _, a := range assignments {
		switch v := a.(type) {
		case Shift:
			span, ok := v.Span()
			if !ok {
				b.Incomplete++
				continue
			}
			b.Trabajo = b.Trabajo.Add(ShiftHours(span, cfg))
		case Franco:
			b.RestDays = b.RestDays.Add(decimal.NewFromInt(1))
		case MedioFranco:
			b.MedioFranco = b.MedioFranco.Add(HoursFromMinutes(v.Segment.Minutes()))
			medioFranco = true
		case Licencia:
			b.Licencia = b.Licencia.Add(HoursFromMinutes(v.Segment.Minutes()))
		}
	}
	if medioFranco {
		b.RestDays = b.RestDays.Add(halfDay)
	}
	return b
}
