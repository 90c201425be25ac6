/*
validate.go - Consistency check for one employee-day before it is stored

RULES (all checked, all reported together):
  a. At most one Franco.
  b. A Franco excludes every time-bearing entry (Shift, MedioFranco, Licencia).
  c. No two time-bearing entries may overlap once normalized.

  The validator never stops at the first problem: an editor shows every
  conflict at once, so each violation becomes one Violation value.

VIOLATION CODES:
  duplicate_franco  more than one Franco in the cell
  franco_exclusive  Franco together with working/leave entries
  overlap           one clashing pair, naming both entries
*/
package roster

import (
	"fmt"
	"strconv"
)

type ViolationCode string

const (
	ViolationDuplicateFranco ViolationCode = "duplicate_franco"
	ViolationFrancoExclusive ViolationCode = "franco_exclusive"
	ViolationOverlap         ViolationCode = "overlap"
)

// Violation is one problem in a cell. Message is plain English; Params carry
// the values a translator needs to render it in another language.
type Violation struct {
	Code    ViolationCode
	Message string
	Params  map[string]string
	Indices []int // positions in the validated list
}

func (v Violation) Error() string { return v.Message }

// CellValidation is the result of ValidateCell.
type CellValidation struct {
	Valid      bool
	Violations []Violation
}

// Errors returns the violation messages in order.
func (c CellValidation) Errors() []string {
	msgs := make([]string, len(c.Violations))
	for i, v := range c.Violations {
		msgs[i] = v.Message
	}
	return msgs
}

// ValidateCell checks one employee-day for internal consistency.
func ValidateCell(assignments []Assignment) CellValidation {
	var (
		violations  []Violation
		francos     []int
		timeBearing []int
	)
	for i, a := range assignments {
		if _, ok := a.(Franco); ok {
			francos = append(francos, i)
		}
		if IsTimeBearing(a) {
			timeBearing = append(timeBearing, i)
		}
	}

	if len(francos) > 1 {
		violations = append(violations, Violation{
			Code:    ViolationDuplicateFranco,
			Message: fmt.Sprintf("cell has %d franco entries, at most one is allowed", len(francos)),
			Params:  map[string]string{"Count": strconv.Itoa(len(francos))},
			Indices: francos,
		})
	}

	if len(francos) > 0 && len(timeBearing) > 0 {
		violations = append(violations, Violation{
			Code:    ViolationFrancoExclusive,
			Message: fmt.Sprintf("franco excludes other entries, found %d", len(timeBearing)),
			Params:  map[string]string{"Count": strconv.Itoa(len(timeBearing))},
			Indices: append([]int{francos[0]}, timeBearing...),
		})
	}

	for x := 0; x < len(timeBearing); x++ {
		for y := x + 1; y < len(timeBearing); y++ {
			i, j := timeBearing[x], timeBearing[y]
			if !AssignmentsOverlap(assignments[i], assignments[j]) {
				continue
			}
			a, b := Describe(assignments[i]), Describe(assignments[j])
			violations = append(violations, Violation{
				Code:    ViolationOverlap,
				Message: fmt.Sprintf("%s overlaps %s", a, b),
				Params:  map[string]string{"A": a, "B": b},
				Indices: []int{i, j},
			})
		}
	}

	return CellValidation{Valid: len(violations) == 0, Violations: violations}
}
