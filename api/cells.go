package api

import (
	"context"
	"net/http"

	"github.com/warp/shift-engine/roster"
)

// =============================================================================
// CELL ENDPOINTS - one employee-day, nothing stored
// =============================================================================

// ValidateCell checks one employee-day and returns every violation found.
func (h *Handler) ValidateCell(w http.ResponseWriter, r *http.Request) {
	var req CellRequest
	if !h.decode(w, r, &req) {
		return
	}
	cell, err := roster.DecodeAssignments(req.Assignments)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.validation(r.Context(), cell))
}

func (h *Handler) validation(ctx context.Context, cell []roster.Assignment) ValidationDTO {
	res := roster.ValidateCell(cell)
	dto := ValidationDTO{Valid: res.Valid, Violations: make([]ViolationDTO, len(res.Violations))}
	for i, v := range res.Violations {
		dto.Violations[i] = ViolationDTO{
			Code:    v.Code,
			Message: h.Translator.Violation(ctx, v, cell),
			Indices: v.Indices,
		}
	}
	return dto
}

// CellHours returns the hours breakdown of one employee-day and its extra
// hours against the catalog.
func (h *Handler) CellHours(w http.ResponseWriter, r *http.Request) {
	var req CellRequest
	if !h.decode(w, r, &req) {
		return
	}
	cell, err := roster.DecodeAssignments(req.Assignments)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	cfg, err := h.workingHours(r.Context(), req.Config)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	templates, err := h.Store.Templates(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toHoursDTO(
		roster.Breakdown(cell, cfg),
		roster.TotalExtraHours(cell, templates, cfg),
	))
}

// SplitLeave carves a leave out of one entry of the cell and returns the
// replacement cell. Nothing is returned unless the whole split is valid.
func (h *Handler) SplitLeave(w http.ResponseWriter, r *http.Request) {
	var req SplitLeaveRequest
	if !h.decode(w, r, &req) {
		return
	}
	cell, err := roster.DecodeAssignments(req.Assignments)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	index, err := resolveTarget(cell, req.TargetRef)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	session := roster.NewSplitSession(cell, roster.LicenciaType(req.Leave.Type))
	if err := session.Select(index); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := setLeaveRange(session, req.Leave); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := session.Validate(); err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := session.Commit()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SplitLeaveDTO{Assignments: roster.EncodeAssignments(out)})
}

func setLeaveRange(session *roster.SplitSession, leave LeaveDTO) error {
	if leave.Preset != nil {
		return session.UsePreset(leave.Preset.Kind, leave.Preset.Segment)
	}
	seg, err := roster.NewSegment(leave.StartTime, leave.EndTime)
	if err != nil {
		return err
	}
	return session.SetRange(seg)
}

// LeavePresets lists the quick splits available for one entry.
func (h *Handler) LeavePresets(w http.ResponseWriter, r *http.Request) {
	var req PresetsRequest
	if !h.decode(w, r, &req) {
		return
	}
	cell, err := roster.DecodeAssignments(req.Assignments)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	index, err := resolveTarget(cell, req.TargetRef)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	session := roster.NewSplitSession(cell, "")
	if err := session.Select(index); err != nil {
		h.fail(w, r, err)
		return
	}

	workMinutes := req.WorkMinutes
	if workMinutes == 0 {
		workMinutes = roster.DefaultPresetWorkMinutes
	}
	writeJSON(w, http.StatusOK, toPresetDTOs(session.PresetsFor(workMinutes)))
}

// resolveTarget picks the entry to split: explicit index first, then the
// first complete shift with the ShiftID, then the first MedioFranco.
func resolveTarget(cell []roster.Assignment, ref TargetRef) (int, error) {
	if ref.Index != nil {
		return *ref.Index, nil
	}
	if i, ok := roster.FindSplitTarget(cell, roster.ShiftID(ref.ShiftID)); ok {
		return i, nil
	}
	return -1, roster.ErrSplitTargetNotFound
}
