// Package jsdoc parses /** ... */ documentation blocks into a description
// and a list of block tags.
package jsdoc

import (
	"strings"
)

// Tag is a single block tag such as `@param {string} name The name.`
type Tag struct {
	Title       string
	Type        string
	Name        string
	Description string
}

// Comment is a parsed documentation block.
type Comment struct {
	Description string
	Tags        []Tag
}

// Tag returns the first tag with the given title.
func (c Comment) Tag(title string) (Tag, bool) {
	for _, t := range c.Tags {
		if t.Title == title {
			return t, true
		}
	}
	return Tag{}, false
}

// TagsByTitle returns every tag with the given title in source order.
func (c Comment) TagsByTitle(title string) []Tag {
	var out []Tag
	for _, t := range c.Tags {
		if t.Title == title {
			out = append(out, t)
		}
	}
	return out
}

// Has reports whether the comment carries a tag with the given title.
func (c Comment) Has(title string) bool {
	_, ok := c.Tag(title)
	return ok
}

// Parse parses a documentation block. The input may include the /** */
// delimiters or be the bare text react-docgen reports as a description.
func Parse(block string) Comment {
	lines := Lines(block)

	var c Comment
	var desc []string
	var current *Tag
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		parseTagBody(current, strings.Join(body, "\n"))
		c.Tags = append(c.Tags, *current)
		current, body = nil, nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "@") && len(trimmed) > 1 {
			flush()
			title, rest, _ := strings.Cut(trimmed[1:], " ")
			current = &Tag{Title: title}
			body = []string{rest}
			continue
		}
		if current != nil {
			body = append(body, line)
			continue
		}
		desc = append(desc, line)
	}
	flush()

	c.Description = strings.TrimSpace(strings.Join(desc, "\n"))
	return c
}

// Lines removes the comment delimiters and the leading `*` gutter and
// returns the remaining lines.
func Lines(block string) []string {
	s := strings.TrimSpace(block)
	if strings.HasPrefix(s, "/**") {
		s = strings.TrimPrefix(s, "/**")
		s = strings.TrimSuffix(s, "*/")
	} else if strings.HasPrefix(s, "/*") {
		s = strings.TrimPrefix(s, "/*")
		s = strings.TrimSuffix(s, "*/")
	}

	raw := strings.Split(s, "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, " \t\r")
		t := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(t, "*") {
			t = strings.TrimPrefix(t, "*")
			t = strings.TrimPrefix(t, " ")
			line = t
		} else {
			line = strings.TrimSpace(line)
		}
		out = append(out, line)
	}

	for len(out) > 0 && strings.TrimSpace(out[0]) == "" {
		out = out[1:]
	}
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	return out
}

func parseTagBody(tag *Tag, body string) {
	body = strings.TrimSpace(body)
	switch tag.Title {
	case "param", "arg", "argument":
		tag.Title = "param"
		tag.Type, body = readType(body)
		tag.Name, body = readName(body)
		body = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(body), "-"))
	case "returns", "return":
		tag.Title = "returns"
		tag.Type, body = readType(body)
	case "type":
		tag.Type, body = readType(body)
	}
	tag.Description = strings.TrimSpace(body)
}

// readType consumes a leading {type} expression; braces may nest.
func readType(s string) (string, string) {
	if !strings.HasPrefix(s, "{") {
		return "", s
	}
	depth := 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[1:i]), strings.TrimSpace(s[i+1:])
			}
		}
	}
	return "", s
}

// readName consumes a parameter name, including the optional `[name=x]`
// form.
func readName(s string) (string, string) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		if end := strings.Index(s, "]"); end > 0 {
			name, _, _ := strings.Cut(s[1:end], "=")
			return strings.TrimSpace(name), s[end+1:]
		}
	}
	end := strings.IndexAny(s, " \t\n")
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end:]
}
