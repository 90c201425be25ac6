/*
handlers.go - HTTP API handlers for the shift engine

PURPOSE:
  Exposes the roster engine via REST API. Handles HTTP request/response,
  JSON serialization, request validation and localized errors, and
  delegates every computation to the roster package.

ENDPOINTS:
  Catalog:
    GET    /api/turnos                 List shift templates
    POST   /api/turnos                 Create or replace a template
    GET    /api/turnos/{id}            Get one template
    DELETE /api/turnos/{id}            Delete a template

  Settings:
    GET    /api/config                 Working-hours settings in effect
    PUT    /api/config                 Replace the stored settings

  Cells (stateless):
    POST   /api/cells/validate         Check one employee-day
    POST   /api/cells/hours            Hours breakdown and extra hours
    POST   /api/cells/split-leave      Carve a leave out of a shift
    POST   /api/cells/leave-presets    Quick split presets

  Weeks and reports (stateless):
    POST   /api/weeks/overlaps         Overlapping shifts per employee-day
    POST   /api/weeks/day-status       Derived dayStatus map
    POST   /api/reports/employee       Stats for one employee

ARCHITECTURE:
  Handler holds all dependencies:
  - Store: templates and settings
  - TurnoFactory: JSON to Turno conversion
  - Translator: localized messages (es/en)
  - validate: request struct validation

REQUEST FLOW:
  1. Decode and validate the request body
  2. Decode wire records into roster values
  3. Load templates and working-hours settings from the store
  4. Call the engine
  5. Serialize response, localizing any messages

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed body, failed validation, bad time or date format
  - 404: Unknown template
  - 422: Well-formed input the engine rejects (leave out of range, invalid
         template, invalid cell on save)
  - 500: Internal errors (logged)

SEE ALSO:
  - dto.go: Request/response data structures
  - cells.go, weeks.go: Engine endpoints
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	es_translations "github.com/go-playground/validator/v10/translations/es"

	"github.com/warp/shift-engine/factory"
	"github.com/warp/shift-engine/i18n"
	"github.com/warp/shift-engine/roster"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store        roster.Store
	TurnoFactory *factory.TurnoFactory
	Translator   *i18n.Translator

	// Overrides is applied to the stored working-hours settings on every
	// request (environment overrides). Nil means none.
	Overrides func(roster.WorkingHoursConfig) roster.WorkingHoursConfig

	Logger *slog.Logger

	validate    *validator.Validate
	fieldErrors *ut.UniversalTranslator
}

// NewHandler creates a new handler with the given store and translator.
func NewHandler(store roster.Store, tr *i18n.Translator) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	esLocale, enLocale := es.New(), en.New()
	uni := ut.New(esLocale, esLocale, enLocale)

	esTrans, _ := uni.GetTranslator("es")
	if err := es_translations.RegisterDefaultTranslations(validate, esTrans); err != nil {
		return nil, fmt.Errorf("register es validation messages: %w", err)
	}
	enTrans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, fmt.Errorf("register en validation messages: %w", err)
	}

	return &Handler{
		Store:        store,
		TurnoFactory: factory.NewTurnoFactory(),
		Translator:   tr,
		Logger:       slog.Default(),
		validate:     validate,
		fieldErrors:  uni,
	}, nil
}

// workingHours returns the settings in effect: the request's own config when
// given, otherwise the stored settings with overrides applied.
func (h *Handler) workingHours(ctx context.Context, requested *roster.WorkingHoursConfig) (roster.WorkingHoursConfig, error) {
	if requested != nil {
		return *requested, requested.Validate()
	}
	cfg, err := h.Store.WorkingHours(ctx)
	if err != nil {
		return roster.WorkingHoursConfig{}, err
	}
	if h.Overrides != nil {
		cfg = h.Overrides(cfg)
	}
	return cfg, nil
}

// =============================================================================
// TURNO ENDPOINTS
// =============================================================================

// ListTurnos returns every template.
func (h *Handler) ListTurnos(w http.ResponseWriter, r *http.Request) {
	turnos, err := h.Store.ListTurnos(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	cfg, err := h.workingHours(r.Context(), nil)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	result := make([]TurnoDTO, len(turnos))
	for i, t := range turnos {
		result[i] = h.toTurnoDTO(t, cfg)
	}
	writeJSON(w, http.StatusOK, result)
}

// CreateTurno creates or replaces a template.
func (h *Handler) CreateTurno(w http.ResponseWriter, r *http.Request) {
	var req factory.TurnoJSON
	if !h.decode(w, r, &req) {
		return
	}

	turno, err := h.TurnoFactory.FromJSON(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.Store.SaveTurno(r.Context(), turno); err != nil {
		h.fail(w, r, err)
		return
	}

	cfg, err := h.workingHours(r.Context(), nil)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.toTurnoDTO(turno, cfg))
}

// GetTurno returns one template.
func (h *Handler) GetTurno(w http.ResponseWriter, r *http.Request) {
	turno, err := h.Store.GetTurno(r.Context(), roster.ShiftID(chi.URLParam(r, "id")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	cfg, err := h.workingHours(r.Context(), nil)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toTurnoDTO(turno, cfg))
}

// DeleteTurno removes a template.
func (h *Handler) DeleteTurno(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteTurno(r.Context(), roster.ShiftID(chi.URLParam(r, "id"))); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) toTurnoDTO(t roster.Turno, cfg roster.WorkingHoursConfig) TurnoDTO {
	return TurnoDTO{
		TurnoJSON: h.TurnoFactory.ToJSON(t),
		Hours:     t.Hours(cfg),
		IsSplit:   t.Span.IsSplit(),
	}
}

// =============================================================================
// CONFIG ENDPOINTS
// =============================================================================

// GetConfig returns the working-hours settings in effect.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.workingHours(r.Context(), nil)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// UpdateConfig replaces the stored settings. Environment overrides still
// apply on top.
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req roster.WorkingHoursConfig
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.Store.SaveWorkingHours(r.Context(), req); err != nil {
		h.fail(w, r, err)
		return
	}
	h.GetConfig(w, r)
}

// =============================================================================
// HELPERS
// =============================================================================

// decode reads and validates a JSON body. On failure it writes the 400
// response and returns false.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "error.invalid_request", err)
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			h.writeError(w, r, http.StatusBadRequest, "error.invalid_request", err)
			return false
		}
		trans, _ := h.fieldErrors.GetTranslator(i18n.LocaleFromContext(r.Context()))
		resp := ErrorResponse{
			Error: h.Translator.T(r.Context(), "error.invalid_request", nil),
			Code:  "invalid_request",
		}
		for _, fe := range verrs {
			resp.Fields = append(resp.Fields, fe.Translate(trans))
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, messageID string, err error) {
	resp := ErrorResponse{Error: h.Translator.T(r.Context(), messageID, nil)}
	if err != nil && status < 500 {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

var (
	badRequestErrors = []error{
		roster.ErrInvalidTimeFormat,
		roster.ErrInvalidDate,
		roster.ErrUnknownAssignmentType,
	}
	unprocessableErrors = []error{
		roster.ErrLeaveOutOfRange,
		roster.ErrInvalidTemplate,
		roster.ErrSplitTargetNotFound,
		roster.ErrInvalidSplitState,
		roster.ErrInvalidConfig,
	}
)

// statusFor maps an engine error to its HTTP status.
func statusFor(err error) int {
	if errors.Is(err, roster.ErrTurnoNotFound) {
		return http.StatusNotFound
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	for _, target := range unprocessableErrors {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}

// fail writes the localized error response for err. Internal errors are
// logged and their details withheld.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := ErrorResponse{Error: h.Translator.Error(r.Context(), err)}
	if status == http.StatusInternalServerError {
		h.Logger.Error("internal server error",
			"method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
