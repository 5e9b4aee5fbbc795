// Package api reconciles docgen output, test metadata, demos and style
// declarations into one ComponentAPI per component, and serializes it.
package api

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/gnana997/propdoc/pkg/demos"
	"github.com/gnana997/propdoc/pkg/project"
	"github.com/gnana997/propdoc/pkg/styles"
	"github.com/gnana997/propdoc/pkg/util"
)

// Additional info markers set on prop table rows.
const (
	InfoCSSAPI     = "cssApi"
	InfoSx         = "sx"
	InfoSlotsAPI   = "slotsApi"
	InfoJoySize    = "joy-size"
	InfoJoyColor   = "joy-color"
	InfoJoyVariant = "joy-variant"
	joyProductID   = "joy-ui"
)

// ComponentAPI is everything documented about one component.
type ComponentAPI struct {
	Name string
	// Filename is relative to the project root, with forward slashes.
	Filename    string
	Description string
	Imports     []string
	Inheritance *project.Inheritance
	// ForwardsRefTo is nil when the ref target is unknown.
	ForwardsRefTo     *string
	Spread            util.Tri
	ThemeDefaultProps util.Tri
	Demos             []demos.Demo
	Classes           []styles.Class
	Slots             []styles.Slot
	Props             PropTable
	Translation       Translation
	MuiName           string
	CSSComponent      bool
	APIPathname       string

	// Component is the resolved file set the API was built from.
	Component project.Component
}

// PropTable maps prop names to rows in table order.
type PropTable struct {
	*orderedmap.OrderedMap[string, PropEntry]
}

// NewPropTable returns an empty table.
func NewPropTable() PropTable {
	return PropTable{orderedmap.New[string, PropEntry]()}
}

// Names returns the prop names in table order.
func (t PropTable) Names() []string {
	if t.OrderedMap == nil {
		return nil
	}
	names := make([]string, 0, t.Len())
	for pair := t.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// PropEntry is one row of the props table.
type PropEntry struct {
	Type            PropType        `json:"type"`
	Default         string          `json:"default,omitempty"`
	Required        bool            `json:"required,omitempty"`
	Deprecated      bool            `json:"deprecated,omitempty"`
	DeprecationInfo string          `json:"deprecationInfo,omitempty"`
	Signature       *PropSignature  `json:"signature,omitempty"`
	AdditionalInfo  map[string]bool `json:"additionalInfo,omitempty"`
}

// PropType names the type; Description is omitted when it would repeat
// the name.
type PropType struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PropSignature is the signature of a documented function prop.
type PropSignature struct {
	Type          string   `json:"type"`
	DescribedArgs []string `json:"describedArgs,omitempty"`
	Returned      string   `json:"returned,omitempty"`
}

// Translation is one language's description bundle.
type Translation struct {
	ComponentDescription string                      `json:"componentDescription"`
	PropDescriptions     map[string]PropTranslation  `json:"propDescriptions"`
	ClassDescriptions    map[string]ClassDescription `json:"classDescriptions"`
	SlotDescriptions     map[string]string           `json:"slotDescriptions,omitempty"`
}

// PropTranslation holds the rendered descriptions of one prop.
type PropTranslation struct {
	Description      string            `json:"description"`
	RequiresRef      bool              `json:"requiresRef,omitempty"`
	Deprecated       string            `json:"deprecated,omitempty"`
	TypeDescriptions map[string]string `json:"typeDescriptions,omitempty"`
}
