package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/gnana997/propdoc/pkg/demos"
	"github.com/gnana997/propdoc/pkg/project"
	"github.com/gnana997/propdoc/pkg/styles"
	"github.com/gnana997/propdoc/pkg/util"
)

// Page is the JSON document emitted for a component's API page.
type Page struct {
	Props             PropTable            `json:"props"`
	Name              string               `json:"name"`
	Imports           []string             `json:"imports"`
	Slots             []styles.Slot        `json:"slots,omitempty"`
	Classes           []styles.Class       `json:"classes"`
	Spread            util.Tri             `json:"spread,omitempty"`
	ThemeDefaultProps util.Tri             `json:"themeDefaultProps,omitempty"`
	MuiName           string               `json:"muiName"`
	ForwardsRefTo     *string              `json:"forwardsRefTo"`
	Filename          string               `json:"filename"`
	Inheritance       *project.Inheritance `json:"inheritance"`
	Demos             string               `json:"demos"`
	CSSComponent      bool                 `json:"cssComponent"`
}

// Page returns the page document of c.
func (c *ComponentAPI) Page() Page {
	props := c.Props
	if props.OrderedMap == nil {
		props = NewPropTable()
	}
	return Page{
		Props:             props,
		Name:              c.Name,
		Imports:           nonNil(c.Imports),
		Slots:             c.Slots,
		Classes:           nonNil(c.Classes),
		Spread:            c.Spread,
		ThemeDefaultProps: c.ThemeDefaultProps,
		MuiName:           c.MuiName,
		ForwardsRefTo:     c.ForwardsRefTo,
		Filename:          c.Filename,
		Inheritance:       c.Inheritance,
		Demos:             demos.RenderList(c.Demos),
		CSSComponent:      c.CSSComponent,
	}
}

// MarshalJSON writes props in table order without HTML escaping.
func (t PropTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if t.OrderedMap != nil {
		first := true
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			key, err := marshalCompact(pair.Key)
			if err != nil {
				return nil, err
			}
			value, err := marshalCompact(pair.Value)
			if err != nil {
				return nil, fmt.Errorf("prop %q: %w", pair.Key, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads props keeping document order.
func (t *PropTable) UnmarshalJSON(data []byte) error {
	t.OrderedMap = orderedmap.New[string, PropEntry]()
	return t.OrderedMap.UnmarshalJSON(data)
}

// EncodeJSON formats v with two-space indentation, no HTML escaping and a
// trailing newline. Map keys are sorted by encoding/json.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PageJSON serializes the page document of c.
func PageJSON(c *ComponentAPI) ([]byte, error) {
	return EncodeJSON(c.Page())
}

// TranslationJSON serializes a translation bundle.
func TranslationJSON(t Translation) ([]byte, error) {
	if t.PropDescriptions == nil {
		t.PropDescriptions = map[string]PropTranslation{}
	}
	if t.ClassDescriptions == nil {
		t.ClassDescriptions = map[string]ClassDescription{}
	}
	return EncodeJSON(t)
}

func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
