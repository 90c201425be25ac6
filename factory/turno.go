/*
Package factory converts external shift template definitions into roster.Turno.

PURPOSE:
  Shift templates ("turnos") are defined outside the code: posted by the
  admin UI as JSON, or kept in a TOML catalog file under version control.
  The factory parses either form, checks the template invariants, and
  produces a roster.Turno the engine can use.

JSON SCHEMA:
  {
    "id": "P",
    "name": "Partido",
    "color": "#ff9800",
    "startTime": "08:00",
    "endTime": "12:00",
    "startTime2": "16:00",
    "endTime2": "20:00"
  }

TOML CATALOG:
  [working_hours]
  minutos_descanso = 30
  horas_minimas_para_descanso = 6
  max_regular_hours_per_day = 8

  [[turno]]
  id = "M"
  name = "Mañana"
  start_time = "08:00"
  end_time = "16:00"

  The [working_hours] table is optional; when it is missing the catalog
  carries the default configuration.

USAGE:
  f := factory.NewTurnoFactory()
  t, err := f.ParseTurno(jsonString)

  cat, err := factory.LoadCatalog("turnos.toml")
  templates := cat.Templates()

SEE ALSO:
  - roster/types.go: Turno and WorkingHoursConfig
  - store/sqlite: persistent catalog
*/
package factory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/warp/shift-engine/roster"
)

// =============================================================================
// SCHEMA TYPES
// =============================================================================

// TurnoJSON is the external representation of a shift template. The same
// struct is used for API payloads and catalog entries.
type TurnoJSON struct {
	ID         string `json:"id" toml:"id" validate:"required,max=32"`
	Name       string `json:"name" toml:"name" validate:"max=100"`
	Color      string `json:"color,omitempty" toml:"color,omitempty" validate:"omitempty,hexcolor"`
	StartTime  string `json:"startTime" toml:"start_time" validate:"required"`
	EndTime    string `json:"endTime" toml:"end_time" validate:"required"`
	StartTime2 string `json:"startTime2,omitempty" toml:"start_time2,omitempty" validate:"required_with=EndTime2"`
	EndTime2   string `json:"endTime2,omitempty" toml:"end_time2,omitempty" validate:"required_with=StartTime2"`
}

// CatalogFile is the TOML document layout.
type CatalogFile struct {
	WorkingHours *roster.WorkingHoursConfig `toml:"working_hours"`
	Turnos       []TurnoJSON                `toml:"turno"`
}

// Catalog is a parsed, validated catalog file.
type Catalog struct {
	WorkingHours roster.WorkingHoursConfig
	Turnos       []roster.Turno
}

// Templates indexes the catalog by ShiftID.
func (c Catalog) Templates() roster.Templates {
	return roster.NewTemplates(c.Turnos...)
}

// =============================================================================
// TURNO FACTORY
// =============================================================================

// TurnoFactory converts template definitions to roster.Turno.
type TurnoFactory struct{}

// NewTurnoFactory creates a new template factory.
func NewTurnoFactory() *TurnoFactory {
	return &TurnoFactory{}
}

// ParseTurno parses a JSON string into a validated Turno.
func (f *TurnoFactory) ParseTurno(jsonStr string) (roster.Turno, error) {
	var tj TurnoJSON
	if err := json.Unmarshal([]byte(jsonStr), &tj); err != nil {
		return roster.Turno{}, fmt.Errorf("failed to parse turno JSON: %w", err)
	}
	return f.FromJSON(tj)
}

// FromJSON converts a TurnoJSON into a validated Turno.
func (f *TurnoFactory) FromJSON(tj TurnoJSON) (roster.Turno, error) {
	first, err := roster.NewSegment(tj.StartTime, tj.EndTime)
	if err != nil {
		return roster.Turno{}, fmt.Errorf("turno %q: %w", tj.ID, err)
	}

	t := roster.Turno{
		ID:    roster.ShiftID(tj.ID),
		Name:  tj.Name,
		Color: tj.Color,
		Span:  roster.Span{First: first},
	}

	switch {
	case tj.StartTime2 != "" && tj.EndTime2 != "":
		second, err := roster.NewSegment(tj.StartTime2, tj.EndTime2)
		if err != nil {
			return roster.Turno{}, fmt.Errorf("turno %q second segment: %w", tj.ID, err)
		}
		t.Span.Second = &second
	case tj.StartTime2 != "" || tj.EndTime2 != "":
		return roster.Turno{}, &roster.TemplateError{ID: t.ID, Reason: "second segment needs both start and end"}
	}

	if err := t.Validate(); err != nil {
		return roster.Turno{}, err
	}
	return t, nil
}

// ToJSON converts a Turno to its external representation.
func (f *TurnoFactory) ToJSON(t roster.Turno) TurnoJSON {
	tj := TurnoJSON{
		ID:        string(t.ID),
		Name:      t.Name,
		Color:     t.Color,
		StartTime: t.Span.First.Start.String(),
		EndTime:   t.Span.First.End.String(),
	}
	if t.Span.Second != nil {
		tj.StartTime2 = t.Span.Second.Start.String()
		tj.EndTime2 = t.Span.Second.End.String()
	}
	return tj
}

// =============================================================================
// CATALOG FILES
// =============================================================================

// ParseCatalog parses a TOML catalog. Every template is validated and IDs
// must be unique; the first failure aborts the load.
func (f *TurnoFactory) ParseCatalog(data []byte) (Catalog, error) {
	var file CatalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse catalog TOML: %w", err)
	}

	cat := Catalog{WorkingHours: roster.DefaultWorkingHoursConfig()}
	if file.WorkingHours != nil {
		cat.WorkingHours = *file.WorkingHours
	}
	if err := cat.WorkingHours.Validate(); err != nil {
		return Catalog{}, fmt.Errorf("working_hours: %w", err)
	}

	seen := make(map[roster.ShiftID]bool, len(file.Turnos))
	for i, tj := range file.Turnos {
		t, err := f.FromJSON(tj)
		if err != nil {
			return Catalog{}, fmt.Errorf("turno[%d]: %w", i, err)
		}
		if seen[t.ID] {
			return Catalog{}, &roster.TemplateError{ID: t.ID, Reason: "duplicate id in catalog"}
		}
		seen[t.ID] = true
		cat.Turnos = append(cat.Turnos, t)
	}
	return cat, nil
}

// MarshalCatalog renders a catalog back to TOML.
func (f *TurnoFactory) MarshalCatalog(cat Catalog) ([]byte, error) {
	wh := cat.WorkingHours
	file := CatalogFile{WorkingHours: &wh}
	for _, t := range cat.Turnos {
		file.Turnos = append(file.Turnos, f.ToJSON(t))
	}
	return toml.Marshal(file)
}

// LoadCatalog reads and parses a TOML catalog file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return NewTurnoFactory().ParseCatalog(data)
}
