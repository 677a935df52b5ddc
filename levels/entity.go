package levels

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// EntityInstance is one placed entity. It is treated as immutable once parsed.
type EntityInstance struct {
	Identifier     string          `json:"__identifier"`
	Iid            uuid.UUID       `json:"iid"`
	Grid           [2]int          `json:"__grid"`
	Pivot          [2]float64      `json:"__pivot"`
	Tags           []string        `json:"__tags"`
	Tile           *TilesetRect    `json:"__tile"`
	SmartColor     string          `json:"__smartColor"`
	DefUID         int             `json:"defUid"`
	Width          int             `json:"width"`
	Height         int             `json:"height"`
	Px             [2]int          `json:"px"`
	WorldX         *int            `json:"__worldX"`
	WorldY         *int            `json:"__worldY"`
	FieldInstances []FieldInstance `json:"fieldInstances"`
}

// Field returns the field instance named identifier.
func (e *EntityInstance) Field(identifier string) (*FieldInstance, bool) {
	if e == nil {
		return nil, false
	}
	for i := range e.FieldInstances {
		if e.FieldInstances[i].Identifier == identifier {
			return &e.FieldInstances[i], true
		}
	}
	return nil, false
}

// FieldValues decodes every field into a plain Go value keyed by identifier.
// Fields that fail to decode are skipped.
func (e *EntityInstance) FieldValues() map[string]any {
	out := make(map[string]any, len(e.FieldInstances))
	for i := range e.FieldInstances {
		f := &e.FieldInstances[i]
		if v, err := f.Any(); err == nil {
			out[f.Identifier] = v
		}
	}
	return out
}

// HasTag reports whether the entity definition carries tag.
func (e *EntityInstance) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// FieldInstance holds a custom field value. The value is kept raw and
// decoded by the typed accessors.
type FieldInstance struct {
	Identifier string          `json:"__identifier"`
	Type       string          `json:"__type"`
	Value      json.RawMessage `json:"__value"`
	DefUID     int             `json:"defUid"`
}

// IsNull reports whether the field has no value.
func (f *FieldInstance) IsNull() bool {
	return len(f.Value) == 0 || string(f.Value) == "null"
}

func (f *FieldInstance) Int() (int, error) {
	var v int
	return v, f.decode(&v)
}

func (f *FieldInstance) Float() (float64, error) {
	var v float64
	return v, f.decode(&v)
}

func (f *FieldInstance) String() (string, error) {
	var v string
	return v, f.decode(&v)
}

func (f *FieldInstance) Bool() (bool, error) {
	var v bool
	return v, f.decode(&v)
}

// Any decodes the value into the natural Go representation.
func (f *FieldInstance) Any() (any, error) {
	var v any
	return v, f.decode(&v)
}

func (f *FieldInstance) decode(dst any) error {
	if f.IsNull() {
		return fmt.Errorf("levels: field %q: %w", f.Identifier, ErrNullField)
	}
	if err := json.Unmarshal(f.Value, dst); err != nil {
		return fmt.Errorf("levels: field %q (%s): %w", f.Identifier, f.Type, err)
	}
	return nil
}
