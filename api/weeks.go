package api

import (
	"context"
	"net/http"

	"github.com/warp/shift-engine/roster"
)

// =============================================================================
// POSTED WEEKS - computed over the request body, nothing stored
// =============================================================================

// WeekOverlaps reports every pair of overlapping shifts in a posted week.
func (h *Handler) WeekOverlaps(w http.ResponseWriter, r *http.Request) {
	var req WeekRequest
	if !h.decode(w, r, &req) {
		return
	}
	week, err := roster.DecodeWeek(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.overlaps(r.Context(), week))
}

func (h *Handler) overlaps(ctx context.Context, week roster.Week) []OverlapDTO {
	found := roster.ValidateScheduleAssignments(week)
	out := make([]OverlapDTO, len(found))
	for i, o := range found {
		out[i] = OverlapDTO{
			Date:       o.Date,
			EmployeeID: o.EmployeeID,
			ShiftA:     o.ShiftA,
			ShiftB:     o.ShiftB,
			Message:    h.Translator.Overlap(ctx, o),
		}
	}
	return out
}

// WeekDayStatus recomputes the dayStatus map of a posted week.
func (h *Handler) WeekDayStatus(w http.ResponseWriter, r *http.Request) {
	var req WeekRequest
	if !h.decode(w, r, &req) {
		return
	}
	week, err := roster.DecodeWeek(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roster.EncodeWeek(week).DayStatus)
}

// EmployeeReport summarizes one employee over a posted week.
func (h *Handler) EmployeeReport(w http.ResponseWriter, r *http.Request) {
	var req EmployeeReportRequest
	if !h.decode(w, r, &req) {
		return
	}
	week, err := roster.DecodeWeek(req.Week)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	cfg, err := h.workingHours(r.Context(), req.Config)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.report(w, r, week, roster.EmployeeID(req.EmployeeID), cfg)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request, week roster.Week, emp roster.EmployeeID, cfg roster.WorkingHoursConfig) {
	templates, err := h.Store.Templates(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	stats := roster.Summarize(week.DaysOf(emp), templates, cfg)
	writeJSON(w, http.StatusOK, toStatsDTO(emp, stats))
}
