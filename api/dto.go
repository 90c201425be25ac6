/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Assignments travel in
  their wire form (roster.AssignmentRecord); hours travel as decimal strings
  so "7.5" never turns into 7.4999.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Catalog:
    TurnoDTO (wraps factory.TurnoJSON)

  Cells:
    CellRequest, ValidationDTO, HoursDTO, SplitLeaveRequest, PresetsRequest

  Weeks and reports:
    WeekRequest, OverlapDTO, EmployeeReportRequest, EmployeeStatsDTO

VALIDATION:
  Struct tags are checked with go-playground/validator before a handler
  touches the engine. Times are only checked for presence here; their
  format is the codec's job.

SEE ALSO:
  - handlers.go: Uses these types
  - roster/codec.go: AssignmentRecord and WeekRecord
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/shift-engine/factory"
	"github.com/warp/shift-engine/roster"
)

// =============================================================================
// CATALOG
// =============================================================================

// TurnoDTO is a shift template plus its derived hours.
type TurnoDTO struct {
	factory.TurnoJSON
	Hours   decimal.Decimal `json:"hours"`
	IsSplit bool            `json:"isSplit"`
}

// =============================================================================
// CELLS
// =============================================================================

// CellRequest carries one employee-day. Config, when present, replaces the
// stored working-hours settings for this call only.
type CellRequest struct {
	Assignments []roster.AssignmentRecord  `json:"assignments"`
	Config      *roster.WorkingHoursConfig `json:"config,omitempty"`
}

// ViolationDTO is one localized cell violation.
type ViolationDTO struct {
	Code    roster.ViolationCode `json:"code"`
	Message string               `json:"message"`
	Indices []int                `json:"indices"`
}

// ValidationDTO is the result of validating a cell.
type ValidationDTO struct {
	Valid      bool           `json:"valid"`
	Violations []ViolationDTO `json:"violations"`
}

// HoursDTO is a cell's hours breakdown plus extra hours against the catalog.
type HoursDTO struct {
	Trabajo       decimal.Decimal  `json:"trabajo"`
	Licencia      decimal.Decimal  `json:"licencia"`
	MedioFranco   decimal.Decimal  `json:"medioFranco"`
	RestDays      decimal.Decimal  `json:"restDays"`
	Total         decimal.Decimal  `json:"total"`
	Incomplete    int              `json:"incomplete"`
	ExtraHours    decimal.Decimal  `json:"extraHours"`
	SkippedShifts []roster.ShiftID `json:"skippedShifts"`
}

// LeaveDTO is the leave to carve out. Either StartTime/EndTime or Preset
// must be set.
type LeaveDTO struct {
	Type      string     `json:"type" validate:"required,max=64"`
	StartTime string     `json:"startTime" validate:"required_without=Preset"`
	EndTime   string     `json:"endTime" validate:"required_without=Preset"`
	Preset    *PresetRef `json:"preset,omitempty"`
}

// PresetRef picks one quick preset of the target.
type PresetRef struct {
	Kind    roster.PresetKind `json:"kind" validate:"required,oneof=work_first leave_first"`
	Segment int               `json:"segment" validate:"gte=0,lte=1"`
}

// TargetRef selects the entry to split: by position, or by ShiftID (first
// complete match), or the first MedioFranco when both are empty.
type TargetRef struct {
	Index   *int   `json:"index,omitempty" validate:"omitempty,gte=0"`
	ShiftID string `json:"shiftId,omitempty"`
}

// SplitLeaveRequest carves a leave out of one entry of a cell.
type SplitLeaveRequest struct {
	Assignments []roster.AssignmentRecord `json:"assignments" validate:"required,min=1"`
	TargetRef
	Leave LeaveDTO `json:"leave" validate:"required"`
}

// SplitLeaveDTO is the replacement cell.
type SplitLeaveDTO struct {
	Assignments []roster.AssignmentRecord `json:"assignments"`
}

// PresetsRequest asks for the quick presets of one entry.
type PresetsRequest struct {
	Assignments []roster.AssignmentRecord `json:"assignments" validate:"required,min=1"`
	TargetRef
	WorkMinutes int `json:"workMinutes,omitempty" validate:"omitempty,gt=0,lt=1440"`
}

// SegmentDTO is one HH:MM range.
type SegmentDTO struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// PresetDTO is one ready-made split.
type PresetDTO struct {
	Kind    roster.PresetKind `json:"kind"`
	Segment int               `json:"segment"`
	Work    SegmentDTO        `json:"work"`
	Leave   SegmentDTO        `json:"leave"`
}

// =============================================================================
// WEEKS AND REPORTS
// =============================================================================

// WeekRequest is a posted week in wire form.
type WeekRequest = roster.WeekRecord

// OverlapDTO is one schedule-level overlap.
type OverlapDTO struct {
	Date       roster.Date       `json:"date"`
	EmployeeID roster.EmployeeID `json:"employeeId"`
	ShiftA     roster.ShiftID    `json:"shiftA"`
	ShiftB     roster.ShiftID    `json:"shiftB"`
	Message    string            `json:"message"`
}

// EmployeeReportRequest summarizes one employee over a posted week.
type EmployeeReportRequest struct {
	Week       roster.WeekRecord          `json:"week"`
	EmployeeID string                     `json:"employeeId" validate:"required"`
	Config     *roster.WorkingHoursConfig `json:"config,omitempty"`
}

// EmployeeStatsDTO is the aggregate for one employee.
type EmployeeStatsDTO struct {
	EmployeeID    roster.EmployeeID `json:"employeeId"`
	Days          int               `json:"days"`
	Trabajo       decimal.Decimal   `json:"trabajo"`
	Licencia      decimal.Decimal   `json:"licencia"`
	MedioFranco   decimal.Decimal   `json:"medioFranco"`
	RestDays      decimal.Decimal   `json:"restDays"`
	Total         decimal.Decimal   `json:"total"`
	Incomplete    int               `json:"incomplete"`
	ExtraHours    decimal.Decimal   `json:"extraHours"`
	SkippedShifts []roster.ShiftID  `json:"skippedShifts"`
	OverMaxDays   []roster.Date     `json:"overMaxDays"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code,omitempty"`
	Details string   `json:"details,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toHoursDTO(b roster.HoursBreakdown, extra roster.ExtraHoursTotal) HoursDTO {
	return HoursDTO{
		Trabajo:       b.Trabajo,
		Licencia:      b.Licencia,
		MedioFranco:   b.MedioFranco,
		RestDays:      b.RestDays,
		Total:         b.Total(),
		Incomplete:    b.Incomplete,
		ExtraHours:    extra.Extra,
		SkippedShifts: nonNil(extra.Skipped),
	}
}

func toStatsDTO(emp roster.EmployeeID, s roster.EmployeeStats) EmployeeStatsDTO {
	return EmployeeStatsDTO{
		EmployeeID:    emp,
		Days:          s.Days,
		Trabajo:       s.Hours.Trabajo,
		Licencia:      s.Hours.Licencia,
		MedioFranco:   s.Hours.MedioFranco,
		RestDays:      s.Hours.RestDays,
		Total:         s.Hours.Total(),
		Incomplete:    s.Hours.Incomplete,
		ExtraHours:    s.ExtraHours,
		SkippedShifts: nonNil(s.SkippedShifts),
		OverMaxDays:   nonNil(s.OverMaxDays),
	}
}

func toSegmentDTO(s roster.Segment) SegmentDTO {
	return SegmentDTO{StartTime: s.Start.String(), EndTime: s.End.String()}
}

func toPresetDTOs(presets []roster.LeavePreset) []PresetDTO {
	out := make([]PresetDTO, len(presets))
	for i, p := range presets {
		out[i] = PresetDTO{Kind: p.Kind, Segment: p.Segment, Work: toSegmentDTO(p.Work), Leave: toSegmentDTO(p.Leave)}
	}
	return out
}

// nonNil keeps empty lists as [] instead of null in responses.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
