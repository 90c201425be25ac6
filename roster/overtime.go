/*
overtime.go - Regular vs. extra hours against the template plan

PURPOSE:
  Compares what a template planned (Turno) with what was actually logged
  (Shift) for one entry, and sums the extra hours over a day.

RULES:
  1. Franco / MedioFranco (and anything that is not a Shift) -> (0, 0).
  2. Normal = ShiftHours(template): the theoretical plan.
  3. Real  = ShiftHours(logged span), where each missing field of the logged
     shift is taken from the template (see legacyRealSpan).
  4. Extra = max(0, Real - Normal). Working less than planned is absorbed:
     Extra is 0 and Normal stays at the planned value.

LEGACY FALLBACK:
  Old records sometimes logged only the first segment of a split shift. The
  field-by-field fallback in legacyRealSpan exists for those records only and
  is the single place in the engine where template times substitute for
  missing logged times.
*/
package roster

import "github.com/shopspring/decimal"

// Overtime is the result for one assignment.
type Overtime struct {
	Normal decimal.Decimal // horasNormales
	Extra  decimal.Decimal // horasExtra
}

var zeroOvertime = Overtime{Normal: decimal.Zero, Extra: decimal.Zero}

// ExtraHours computes regular and extra hours for one assignment.
func ExtraHours(a Assignment, template Turno, cfg WorkingHoursConfig) Overtime {
	shift, ok := a.(Shift)
	if !ok {
		return zeroOvertime
	}

	normal := ShiftHours(template.Span, cfg)
	worked, ok := legacyRealSpan(shift, template)
	if !ok {
		return Overtime{Normal: normal, Extra: decimal.Zero}
	}

	extra := ShiftHours(worked, cfg).Sub(normal)
	if extra.IsNegative() {
		extra = decimal.Zero
	}
	return Overtime{Normal: normal, Extra: extra}
}

// legacyRealSpan builds the "real" span from the logged shift, taking each
// missing field from the template.
func legacyRealSpan(s Shift, t Turno) (Span, bool) {
	pick := func(logged *TimeOfDay, planned *TimeOfDay) *TimeOfDay {
		if logged != nil {
			return logged
		}
		return planned
	}

	var tStart2, tEnd2 *TimeOfDay
	if t.Span.Second != nil {
		tStart2 = TimePtr(t.Span.Second.Start)
		tEnd2 = TimePtr(t.Span.Second.End)
	}

	worked := Shift{
		ShiftID: s.ShiftID,
		Start:   pick(s.Start, TimePtr(t.Span.First.Start)),
		End:     pick(s.End, TimePtr(t.Span.First.End)),
		Start2:  pick(s.Start2, tStart2),
		End2:    pick(s.End2, tEnd2),
	}
	return worked.Span()
}

// =============================================================================
// DAY TOTAL
// =============================================================================

// ExtraHoursTotal is the day sum plus the entries that could not be priced.
type ExtraHoursTotal struct {
	Extra   decimal.Decimal
	Skipped []ShiftID // Shift entries whose template was not found
}

// TotalExtraHours sums ExtraHours over every Shift entry of a day. Entries
// whose ShiftID has no template are skipped and listed, never fatal.
func TotalExtraHours(assignments []Assignment, templates Templates, cfg WorkingHoursConfig) ExtraHoursTotal {
	total := ExtraHoursTotal{Extra: decimal.Zero}
	for _, a := range assignments {
		shift, ok := a.(Shift)
		if !ok {
			continue
		}
		template, ok := templates.Lookup(shift.ShiftID)
		if !ok {
			total.Skipped = append(total.Skipped, shift.ShiftID)
			continue
		}
		total.Extra = total.Extra.Add(ExtraHours(shift, template, cfg).Extra)
	}
	return total
}
