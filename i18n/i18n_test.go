package i18n

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shift-engine/roster"
)

func newTranslator(t *testing.T) *Translator {
	t.Helper()
	tr, err := New("es")
	require.NoError(t, err)
	return tr
}

func TestMatch(t *testing.T) {
	tr := newTranslator(t)

	assert.Equal(t, "es", tr.Match(""))
	assert.Equal(t, "en", tr.Match("en-US,en;q=0.9"))
	assert.Equal(t, "es", tr.Match("es-AR,es;q=0.9,en;q=0.5"))
	assert.Equal(t, "es", tr.Match("fr-FR"), "unsupported falls back to the first supported locale")
}

func TestT_FallsBackToMessageID(t *testing.T) {
	tr := newTranslator(t)
	assert.Equal(t, "no.such.message", tr.T(context.Background(), "no.such.message", nil))
}

func TestViolation_OverlapIsLocalized(t *testing.T) {
	tr := newTranslator(t)

	// GIVEN: two overlapping shifts
	cell := []roster.Assignment{
		roster.NewShift("A", roster.Span{First: roster.MustSegment("08:00", "12:00")}),
		roster.NewShift("B", roster.Span{First: roster.MustSegment("11:00", "15:00")}),
	}
	res := roster.ValidateCell(cell)
	require.Len(t, res.Violations, 1)

	// WHEN / THEN: rendered in both languages
	es := tr.Violation(WithLocale(context.Background(), "es"), res.Violations[0], cell)
	assert.Equal(t, "turno A (08:00-12:00) se superpone con turno B (11:00-15:00)", es)

	en := tr.Violation(WithLocale(context.Background(), "en"), res.Violations[0], cell)
	assert.Equal(t, "shift A (08:00-12:00) overlaps shift B (11:00-15:00)", en)
}

func TestViolation_FrancoCount(t *testing.T) {
	tr := newTranslator(t)
	cell := []roster.Assignment{roster.Franco{}, roster.Franco{}}
	res := roster.ValidateCell(cell)
	require.Len(t, res.Violations, 1)

	msg := tr.Violation(WithLocale(context.Background(), "es"), res.Violations[0], cell)
	assert.Contains(t, msg, "2 francos")
}

func TestError(t *testing.T) {
	tr := newTranslator(t)
	ctx := WithLocale(context.Background(), "en")

	_, err := roster.ParseTime("8am")
	assert.Equal(t, "Times must be in HH:MM format", tr.Error(ctx, err))

	wrapped := fmt.Errorf("cell: %w", roster.ErrLeaveOutOfRange)
	assert.Equal(t, "The leave must lie inside a single segment of the shift", tr.Error(ctx, wrapped))

	assert.Equal(t, "Internal error", tr.Error(ctx, errors.New("disk on fire")))
}

func TestMiddleware(t *testing.T) {
	tr := newTranslator(t)

	var seen string
	h := tr.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = LocaleFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-GB")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "en", seen)
	assert.Equal(t, "en", rec.Header().Get("Content-Language"))
}

func TestEveryLocaleHasEveryMessage(t *testing.T) {
	tr := newTranslator(t)
	ids := []string{
		"describe.shift", "describe.franco", "violation.overlap",
		"violation.duplicate_franco", "violation.franco_exclusive", "schedule.overlap",
	}
	for _, m := range errorMessages {
		ids = append(ids, m.id)
	}

	for _, locale := range []string{"es", "en"} {
		ctx := WithLocale(context.Background(), locale)
		for _, id := range ids {
			assert.NotEqual(t, id, tr.T(ctx, id, map[string]any{"Count": 1, "ID": "M", "Range": "x", "A": "a", "B": "b"}),
				"%s missing in %s", id, locale)
		}
	}
}
