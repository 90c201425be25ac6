/*
Package i18n localizes engine output for the editor (Spanish) and for
integrations (English).

PURPOSE:
  The engine reports violations and errors as codes plus parameters. This
  package turns them into sentences in the caller's language, picked from
  the Accept-Language header and carried in the request context.

MESSAGE FILES:
  locales/*.json are embedded at build time. Keys are flat message IDs:
    describe.*   one assignment, as it appears inside other messages
    violation.*  one per roster.ViolationCode
    error.*      one per client-facing sentinel error

SEE ALSO:
  - roster/validate.go: Violation codes and indices
  - api/server.go: Middleware wiring
*/
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/warp/shift-engine/roster"
)

//go:embed locales/*.json
var localeFS embed.FS

// Supported lists the available locales; the first is the fallback.
var Supported = []language.Tag{language.Spanish, language.English}

type ctxKey struct{}

// Translator holds the parsed message bundle.
type Translator struct {
	bundle        *i18n.Bundle
	matcher       language.Matcher
	defaultLocale string
}

// New loads every embedded locale file. defaultLocale is used when a request
// carries no usable Accept-Language.
func New(defaultLocale string) (*Translator, error) {
	bundle := i18n.NewBundle(language.Spanish)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", e.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", e.Name(), err)
		}
	}

	if defaultLocale == "" {
		defaultLocale = Supported[0].String()
	}
	return &Translator{
		bundle:        bundle,
		matcher:       language.NewMatcher(Supported),
		defaultLocale: defaultLocale,
	}, nil
}

// WithLocale returns a new context carrying the given locale (e.g. "es", "en").
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKey{}, locale)
}

// LocaleFromContext returns the locale set by WithLocale, or "".
func LocaleFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKey{}).(string)
	return v
}

// Match resolves an Accept-Language header against the supported locales.
func (t *Translator) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return t.defaultLocale
	}
	tag, _ := language.MatchStrings(t.matcher, acceptLanguage)
	base, _ := tag.Base()
	return base.String()
}

// Middleware stores the negotiated locale in each request context.
func (t *Translator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := t.Match(r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Language", locale)
		next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), locale)))
	})
}

// T translates a message ID for the locale in ctx. Unknown IDs come back
// verbatim so a missing translation is visible instead of blank.
func (t *Translator) T(ctx context.Context, messageID string, data map[string]any) string {
	locale := LocaleFromContext(ctx)
	if locale == "" {
		locale = t.defaultLocale
	}
	l := i18n.NewLocalizer(t.bundle, locale)

	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: data})
	if err != nil {
		return messageID
	}
	return msg
}

// =============================================================================
// ENGINE OUTPUT
// =============================================================================

// Describe names one assignment inside a sentence.
func (t *Translator) Describe(ctx context.Context, a roster.Assignment) string {
	switch v := a.(type) {
	case roster.Shift:
		span, ok := v.Span()
		if !ok {
			return t.T(ctx, "describe.shift_incomplete", map[string]any{"ID": v.ShiftID})
		}
		return t.T(ctx, "describe.shift", map[string]any{"ID": v.ShiftID, "Range": span.String()})
	case roster.MedioFranco:
		return t.T(ctx, "describe.medio_franco", map[string]any{"Range": v.Segment.String()})
	case roster.Licencia:
		return t.T(ctx, "describe.licencia", map[string]any{"Range": v.Segment.String()})
	case roster.Franco:
		return t.T(ctx, "describe.franco", nil)
	default:
		return t.T(ctx, "describe.nota", nil)
	}
}

// Violation renders one cell violation. cell is the list that was validated;
// overlap messages re-describe the two entries it points at.
func (t *Translator) Violation(ctx context.Context, v roster.Violation, cell []roster.Assignment) string {
	data := make(map[string]any, len(v.Params))
	for k, p := range v.Params {
		data[k] = p
	}
	if v.Code == roster.ViolationOverlap && len(v.Indices) == 2 &&
		v.Indices[0] < len(cell) && v.Indices[1] < len(cell) {
		data["A"] = t.Describe(ctx, cell[v.Indices[0]])
		data["B"] = t.Describe(ctx, cell[v.Indices[1]])
	}
	return t.T(ctx, "violation."+string(v.Code), data)
}

// Overlap renders one schedule-level overlap.
func (t *Translator) Overlap(ctx context.Context, o roster.Overlap) string {
	return t.T(ctx, "schedule.overlap", map[string]any{
		"Date":     o.Date,
		"Employee": o.EmployeeID,
		"A":        o.ShiftA,
		"B":        o.ShiftB,
	})
}

var errorMessages = []struct {
	target error
	id     string
}{
	{roster.ErrInvalidTimeFormat, "error.invalid_time_format"},
	{roster.ErrLeaveOutOfRange, "error.leave_out_of_range"},
	{roster.ErrInvalidTemplate, "error.invalid_template"},
	{roster.ErrSplitTargetNotFound, "error.split_target_not_found"},
	{roster.ErrInvalidSplitState, "error.invalid_split_state"},
	{roster.ErrUnknownAssignmentType, "error.unknown_assignment_type"},
	{roster.ErrTurnoNotFound, "error.turno_not_found"},
	{roster.ErrInvalidDate, "error.invalid_date"},
	{roster.ErrInvalidConfig, "error.invalid_config"},
}

// Error renders an engine error. Errors outside the engine's sentinels are
// reported as internal.
func (t *Translator) Error(ctx context.Context, err error) string {
	for _, m := range errorMessages {
		if errors.Is(err, m.target) {
			return t.T(ctx, m.id, nil)
		}
	}
	return t.T(ctx, "error.internal", nil)
}
