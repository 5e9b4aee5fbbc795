// Package markdown renders JSDoc markdown to the HTML stored in API pages
// and translations.
package markdown

import (
	"regexp"
	"strings"
	"sync"

	"gitlab.com/golang-commonmark/markdown"
)

// Renderer turns markdown into an HTML fragment.
type Renderer interface {
	Render(text string) string
}

// CommonMark renders with golang-commonmark. It is safe for concurrent use.
type CommonMark struct {
	mu   sync.Mutex
	md   *markdown.Markdown
	host string
}

// Option configures a CommonMark renderer.
type Option func(*CommonMark)

// WithHost rewrites root-relative links ("/material-ui/...") to absolute
// URLs on host.
func WithHost(host string) Option {
	return func(c *CommonMark) { c.host = strings.TrimSuffix(host, "/") }
}

// New creates a CommonMark renderer. Raw HTML in descriptions is kept.
func New(opts ...Option) *CommonMark {
	c := &CommonMark{
		md: markdown.New(
			markdown.HTML(true),
			markdown.XHTMLOutput(false),
			markdown.Linkify(false),
			markdown.Typographer(false),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render renders text. Empty input renders to "".
func (c *CommonMark) Render(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	c.mu.Lock()
	out := c.md.RenderToString([]byte(text))
	c.mu.Unlock()

	out = strings.TrimRight(out, "\n")
	if c.host != "" {
		out = AbsolutizeLinks(out, c.host)
	}
	return out
}

var rootRelativeHref = regexp.MustCompile(`href="(/[^/"][^"]*)"`)

// AbsolutizeLinks prefixes root-relative hrefs in html with host.
func AbsolutizeLinks(html, host string) string {
	host = strings.TrimSuffix(host, "/")
	return rootRelativeHref.ReplaceAllString(html, `href="`+host+`$1"`)
}

// AbsoluteURL joins host and a root-relative pathname. Absolute URLs are
// returned unchanged.
func AbsoluteURL(host, pathname string) string {
	if strings.HasPrefix(pathname, "http://") || strings.HasPrefix(pathname, "https://") {
		return pathname
	}
	return strings.TrimSuffix(host, "/") + "/" + strings.TrimPrefix(pathname, "/")
}

// Inline renders text and drops a single wrapping paragraph, for short
// fragments such as class conditions.
func Inline(r Renderer, text string) string {
	out := r.Render(text)
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		return out[len("<p>") : len(out)-len("</p>")]
	}
	return out
}
