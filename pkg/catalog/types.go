package catalog

import "github.com/gnana997/propdoc/pkg/project"

// Catalog holds every generated API page under one output directory.
type Catalog struct {
	// Dir is the output directory the pages were read from.
	Dir        string      `json:"dir"`
	Components []Component `json:"components"`
}

// Component is one API page joined with its English descriptions.
type Component struct {
	Name        string               `json:"name"`
	Kebab       string               `json:"kebab"`
	Description string               `json:"description,omitempty"`
	MuiName     string               `json:"muiName"`
	Filename    string               `json:"filename"`
	Imports     []string             `json:"imports"`
	Inheritance *project.Inheritance `json:"inheritance,omitempty"`
	Props       []Prop               `json:"props"`
	Classes     []Class              `json:"classes,omitempty"`
	Slots       []Slot               `json:"slots,omitempty"`
	// Demos is the rendered demo list.
	Demos string `json:"demos,omitempty"`
}

// Prop is one row of a component's props table.
type Prop struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	TypeDescription string `json:"typeDescription,omitempty"`
	Default         string `json:"default,omitempty"`
	Required        bool   `json:"required,omitempty"`
	Deprecated      bool   `json:"deprecated,omitempty"`
	Description     string `json:"description,omitempty"`
}

// Class is a CSS class key with its generated class name.
type Class struct {
	Key         string `json:"key"`
	ClassName   string `json:"className"`
	Description string `json:"description,omitempty"`
}

// Slot is a replaceable sub-element.
type Slot struct {
	Name        string `json:"name"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}
