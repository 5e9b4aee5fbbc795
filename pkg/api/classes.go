package api

import "regexp"

const rootElement = "the root element"

var classDescriptionPattern = regexp.MustCompile(`((Styles|State class|Class name) applied to )(.*?)(( if | unless | when |, ){1}(.*))?\.`)

// ClassDescription is a class description split into a template and its
// substitutions. NodeName and Conditions are empty when not recorded.
type ClassDescription struct {
	Description string `json:"description"`
	NodeName    string `json:"nodeName,omitempty"`
	Conditions  string `json:"conditions,omitempty"`
}

// DecomposeClassDescription splits "Styles applied to <node> if <cond>."
// into a {{nodeName}}/{{conditions}} template. The root element is the
// template default and is never recorded as a node name.
func DecomposeClassDescription(description string) ClassDescription {
	m := classDescriptionPattern.FindStringSubmatch(description)
	if m == nil {
		return ClassDescription{Description: description}
	}
	node, conditions := m[3], m[6]

	if conditions != "" {
		out := ClassDescription{
			Description: classDescriptionPattern.ReplaceAllString(description, "$1{{nodeName}}$5{{conditions}}."),
			Conditions:  conditions,
		}
		if node != rootElement {
			out.NodeName = node
		}
		return out
	}
	if node != "" && node != rootElement {
		return ClassDescription{
			Description: classDescriptionPattern.ReplaceAllString(description, "$1{{nodeName}}$5."),
			NodeName:    node,
		}
	}
	return ClassDescription{Description: description}
}
