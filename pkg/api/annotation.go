package api

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gnana997/propdoc/pkg/markdown"
)

var relativeMarkdownLink = regexp.MustCompile(`\]\((/[^)]*)\)`)

// AnnotationMarkdown is the markdown placed in the declaration file's
// JSDoc: the description, then Demos and API link lists, with links
// absolute on host.
func (c *ComponentAPI) AnnotationMarkdown(host string) string {
	var lines []string
	if c.Description != "" {
		description := relativeMarkdownLink.ReplaceAllStringFunc(c.Description, func(link string) string {
			m := relativeMarkdownLink.FindStringSubmatch(link)
			return "](" + markdown.AbsoluteURL(host, m[1]) + ")"
		})
		lines = append(lines, strings.Split(description, "\n")...)
		lines = append(lines, "")
	}

	if len(c.Demos) > 0 {
		lines = append(lines, "Demos:", "")
		for _, d := range c.Demos {
			lines = append(lines, fmt.Sprintf("- [%s](%s)", d.Title, markdown.AbsoluteURL(host, d.Pathname)))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "API:", "")
	lines = append(lines, fmt.Sprintf("- [%s API](%s)", c.Name, markdown.AbsoluteURL(host, c.APIPathname)))
	if c.Inheritance != nil {
		lines = append(lines, fmt.Sprintf("- inherits [%s API](%s)", c.Inheritance.Component, markdown.AbsoluteURL(host, c.Inheritance.Pathname)))
	}
	return strings.Join(lines, "\n")
}

// CommentBlock wraps markdown in a /** */ block, one " * " line per line.
func CommentBlock(text string) string {
	var b strings.Builder
	b.WriteString("/**\n")
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			b.WriteString(" *\n")
			continue
		}
		b.WriteString(" * ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(" */")
	return b.String()
}
