package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"maps"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var uriPattern = regexp.MustCompile(`[A-Za-z]+://[-\w.]*[-\w](:\d+)?(/([\w/.#-]*(\?\S+)?[^.\s])?)?`)

// TemplateHelper renders templates of a set with shared variables.
// Every render also receives the helper itself as the "tpl" variable.
type TemplateHelper struct {
	tmpl      *template.Template
	variables map[string]any
}

// NewTemplateHelper returns a helper rendering templates from tmpl.
func NewTemplateHelper(tmpl *template.Template) *TemplateHelper {
	return &TemplateHelper{tmpl: tmpl, variables: map[string]any{}}
}

// SetVariables replaces the variables passed to every template. A nil map clears them.
func (h *TemplateHelper) SetVariables(vars map[string]any) {
	if vars == nil {
		vars = map[string]any{}
	}
	h.variables = vars
}

// Variables returns the shared variables.
func (h *TemplateHelper) Variables() map[string]any {
	return h.variables
}

// Render executes the named template with the shared variables merged with extra.
// Extra values win on conflicting keys; the shared map is not modified.
func (h *TemplateHelper) Render(name string, extra map[string]any) (string, error) {
	if h.tmpl == nil || h.tmpl.Lookup(name) == nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	data := make(map[string]any, len(h.variables)+len(extra)+1)
	maps.Copy(data, h.variables)
	maps.Copy(data, extra)
	data["tpl"] = h

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// Slug converts s to a lowercase identifier of ASCII letters, digits, underscores and dashes.
// Spaces become dashes and accents are dropped: "Crème brûlée" becomes "creme-brulee".
func (h *TemplateHelper) Slug(s string) string {
	return Slug(s)
}

// EscapeButPreserveURIs escapes raw for HTML and turns the URIs in it into links.
func (h *TemplateHelper) EscapeButPreserveURIs(raw string) template.HTML {
	return EscapeButPreserveURIs(raw)
}

// Slug is the function behind TemplateHelper.Slug.
func Slug(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	folded = strings.ReplaceAll(folded, " ", "-")
	folded = strings.Map(func(r rune) rune {
		switch {
		case r == '-' || r == '_':
			return r
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			return r
		}
		return -1
	}, folded)

	return cases.Lower(language.Und).String(folded)
}

// EscapeButPreserveURIs is the function behind TemplateHelper.EscapeButPreserveURIs.
func EscapeButPreserveURIs(raw string) template.HTML {
	escaped := template.HTMLEscapeString(raw)
	linked := uriPattern.ReplaceAllString(escaped, `<a href="$0" target="_blank">$0</a>`)
	return template.HTML(linked) //nolint:gosec // input is escaped above
}
