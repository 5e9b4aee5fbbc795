package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnana997/propdoc/pkg/api"
	"github.com/gnana997/propdoc/pkg/catalog"
	"github.com/gnana997/propdoc/pkg/util"
)

const maxWidth = 80

func newInspectCmd(g *globalOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect <component>",
		Short: "Generate one component's API in memory and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := g.logger(cmd)
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			a, err := newApp(cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.loadDemos(); err != nil {
				return fmt.Errorf("load demo pages: %w", err)
			}
			components, err := a.project.Discover()
			if err != nil {
				return err
			}
			selected, err := selectComponents(components, args)
			if err != nil {
				return err
			}

			c, err := a.builder.GenerateComponentAPI(cmd.Context(), selected[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				data, err := api.PageJSON(c)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}
			comp := catalog.FromPage(util.KebabCase(c.Name), c.Page(), c.Translation)
			printComponentHuman(out, &comp)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the page JSON instead of a summary")
	return cmd
}

// printComponentHuman prints a human-readable component summary.
func printComponentHuman(w io.Writer, comp *catalog.Component) {
	header := comp.Name
	if comp.MuiName != "" {
		header += "  [" + comp.MuiName + "]"
	}
	fmt.Fprintln(w, header)

	if comp.Description != "" {
		fmt.Fprintln(w)
		printWrapped(w, stripTags(comp.Description), 0, maxWidth)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Import")
	for _, imp := range comp.Imports {
		fmt.Fprintf(w, "  %s\n", imp)
	}

	if comp.Inheritance != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Inherits  %s (%s)\n", comp.Inheritance.Component, comp.Inheritance.Pathname)
	}

	fmt.Fprintln(w)
	printPropsSection(w, "Props", comp.Props)

	fmt.Fprintln(w)
	if len(comp.Classes) == 0 {
		fmt.Fprintln(w, "CSS classes  (none)")
	} else {
		fmt.Fprintln(w, "CSS classes")
		width := 0
		for _, c := range comp.Classes {
			width = max(width, len(c.ClassName))
		}
		for _, c := range comp.Classes {
			fmt.Fprintf(w, "  %-*s  %s\n", width, c.ClassName, stripTags(c.Description))
		}
	}

	if len(comp.Slots) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Slots")
		width := 0
		for _, s := range comp.Slots {
			width = max(width, len(s.Name))
		}
		for _, s := range comp.Slots {
			def := s.Default
			if def == "" {
				def = "—"
			}
			fmt.Fprintf(w, "  %-*s  %s  %s\n", width, s.Name, def, stripTags(s.Description))
		}
	}
}

// printPropsSection renders the props table with dynamic column widths.
func printPropsSection(w io.Writer, title string, props []catalog.Prop) {
	if len(props) == 0 {
		fmt.Fprintf(w, "%s  (none)\n", title)
		return
	}
	fmt.Fprintln(w, title)

	nameW := len("NAME")
	typeW := len("TYPE")
	defW := len("DEFAULT")
	for _, p := range props {
		nameW = max(nameW, len(p.Name))
		typeW = max(typeW, len(p.Type))
		defW = max(defW, len(orDash(p.Default)))
	}

	sepLen := nameW + typeW + 5 + defW + 4
	fmt.Fprintf(w, "  %-*s  %-*s  %-3s  %-*s\n", nameW, "NAME", typeW, "TYPE", "REQ", defW, "DEFAULT")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("─", sepLen))

	for _, p := range props {
		req := "no"
		if p.Required {
			req = "yes"
		}
		deprecated := ""
		if p.Deprecated {
			deprecated = " [deprecated]"
		}
		fmt.Fprintf(w, "  %-*s  %-*s  %-3s  %-*s%s\n",
			nameW, p.Name, typeW, p.Type, req, defW, orDash(p.Default), deprecated)

		pad := strings.Repeat(" ", nameW)
		if p.Description != "" {
			fmt.Fprintf(w, "  %s  %s\n", pad, stripTags(p.Description))
		}
		if p.TypeDescription != "" {
			fmt.Fprintf(w, "  %s  type: %s\n", pad, wrapUnion(stripTags(p.TypeDescription), nameW+10))
		}
	}
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// wrapUnion wraps a `a | b | c` type if it exceeds maxWidth.
func wrapUnion(union string, indent int) string {
	if indent+len(union) <= maxWidth {
		return union
	}
	parts := strings.Split(union, " | ")
	var sb strings.Builder
	lineLen := indent
	for i, part := range parts {
		addition := len(part)
		if i > 0 {
			addition += 3
		}
		if lineLen+addition > maxWidth && i > 0 {
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", indent))
			lineLen = indent
		}
		if i > 0 {
			sb.WriteString(" | ")
			lineLen += 3
		}
		sb.WriteString(part)
		lineLen += len(part)
	}
	return sb.String()
}

// printWrapped prints text word-wrapped at width with the given left indent.
func printWrapped(w io.Writer, text string, indent, width int) {
	prefix := strings.Repeat(" ", indent)
	line := prefix
	for _, word := range strings.Fields(text) {
		switch {
		case line == prefix:
			line += word
		case len(line)+len(word)+1 > width:
			fmt.Fprintln(w, line)
			line = prefix + word
		default:
			line += " " + word
		}
	}
	if line != prefix {
		fmt.Fprintln(w, line)
	}
}

// stripTags drops HTML tags from rendered descriptions for terminal output.
func stripTags(s string) string {
	var sb strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>' && inTag:
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return strings.NewReplacer("&lt;", "<", "&gt;", ">", "&quot;", `"`, "&#39;", "'", "&amp;", "&").Replace(sb.String())
}
