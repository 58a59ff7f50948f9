package handlers

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"maps"
	"net"
	"net/http"
	"os"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/ouch"
	"github.com/dmitrymomot/ouch/core/formatter"
	"github.com/dmitrymomot/ouch/core/inspector"
	"github.com/dmitrymomot/ouch/core/response"
)

const (
	// DefaultTheme is the stylesheet used when no theme or an unknown one is set.
	DefaultTheme = "blue"

	// DefaultPageTitle is the page title used when none is set.
	DefaultPageTitle = "Ouch! There was an error."

	// snippetRadius is the number of source lines shown on each side of a frame's line.
	snippetRadius = 5
)

//go:embed templates
var templatesFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Themes returns the names of the embedded themes.
func Themes() []string {
	entries, err := fs.ReadDir(templatesFS, "templates/themes")
	if err != nil {
		return nil
	}
	themes := make([]string, 0, len(entries))
	for _, e := range entries {
		themes = append(themes, strings.TrimSuffix(e.Name(), ".css"))
	}
	return themes
}

// PrettyPageHandler renders the error as a self-contained HTML page with the stack frames,
// their source and the request details. With a response sink it sends the page and stops
// the chain; without one it passes the HTML on as its output.
type PrettyPageHandler struct {
	theme        string
	title        string
	sendResponse bool
	scripts      []string
	environment  map[string]string
	editors      *editors
}

// PageOption configures a PrettyPageHandler.
type PageOption func(*PrettyPageHandler)

// WithTheme selects one of Themes(). Unknown names fall back to DefaultTheme at render time.
func WithTheme(theme string) PageOption {
	return func(h *PrettyPageHandler) { h.theme = theme }
}

// WithPageTitle sets the page title.
func WithPageTitle(title string) PageOption {
	return func(h *PrettyPageHandler) { h.title = title }
}

// WithEditor selects a known editor for frame links. Unknown names are ignored;
// use SetEditor to get the error.
func WithEditor(name string) PageOption {
	return func(h *PrettyPageHandler) { _ = h.editors.use(name) }
}

// WithSendResponse controls whether the page is written to the response sink. Default: true.
func WithSendResponse(send bool) PageOption {
	return func(h *PrettyPageHandler) { h.sendResponse = send }
}

// WithScripts adds script URLs loaded at the end of the page.
func WithScripts(urls ...string) PageOption {
	return func(h *PrettyPageHandler) { h.scripts = append(h.scripts, urls...) }
}

// WithEnvironment adds an "Environment Variables" table with the given values.
// Nothing from the process environment is shown unless passed here.
func WithEnvironment(env map[string]string) PageOption {
	return func(h *PrettyPageHandler) { h.environment = maps.Clone(env) }
}

// NewPrettyPageHandler creates a page handler.
func NewPrettyPageHandler(opts ...PageOption) *PrettyPageHandler {
	h := &PrettyPageHandler{
		theme:        DefaultTheme,
		title:        DefaultPageTitle,
		sendResponse: true,
		editors:      newEditors(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AddEditor registers a URL template under name. %file and %line are replaced by the
// URL-escaped file path and line number.
func (h *PrettyPageHandler) AddEditor(name, urlTemplate string) {
	h.editors.add(name, templateEditor(urlTemplate))
}

// AddEditorFunc registers a resolver under name.
func (h *PrettyPageHandler) AddEditorFunc(name string, fn EditorFunc) {
	h.editors.add(name, fn)
}

// SetEditor selects a registered editor. It returns ErrUnknownEditor for unknown names.
func (h *PrettyPageHandler) SetEditor(name string) error {
	return h.editors.use(name)
}

// SetEditorFunc selects a resolver that is not registered under a name. nil disables links.
func (h *PrettyPageHandler) SetEditorFunc(fn EditorFunc) {
	h.editors.useFunc(fn)
}

// EditorHref returns the link opening file at line in the selected editor.
// It returns "" without error when no editor is selected.
func (h *PrettyPageHandler) EditorHref(file string, line int) (string, error) {
	return h.editors.href(file, line)
}

// LoadEditors registers the editors of a YAML file mapping names to URL templates.
func (h *PrettyPageHandler) LoadEditors(path string) error {
	known, err := readEditorsFile(path)
	if err != nil {
		return err
	}
	for name, tmpl := range known {
		h.AddEditor(name, tmpl)
	}
	return nil
}

// Handle implements ouch.Handler.
func (h *PrettyPageHandler) Handle(s *ouch.Scope, next ouch.Next) {
	page, err := h.Render(s)
	if err != nil {
		next(err, ouch.Continue)
		return
	}

	if w := s.Response(); w != nil && h.sendResponse {
		_ = response.Render(w, s.Request(), response.TemplWithStatus(templ.Raw(page), s.Inspector().Code()))
		next(nil, ouch.Quit)
		return
	}
	next(page, ouch.Continue)
}

// Component exposes the page for hosts rendering templ components.
func (h *PrettyPageHandler) Component(s *ouch.Scope) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		page, err := h.Render(s)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, page)
		return err
	})
}

// Render returns the page HTML.
func (h *PrettyPageHandler) Render(s *ouch.Scope) (string, error) {
	insp := s.Inspector()

	stylesheet, err := h.stylesheet()
	if err != nil {
		return "", err
	}
	frames, err := h.frameViews(insp.Frames())
	if err != nil {
		return "", err
	}

	helper := NewTemplateHelper(pageTemplates)
	helper.SetVariables(map[string]any{
		"title":          h.title,
		"stylesheet":     template.CSS(stylesheet), //nolint:gosec // embedded file
		"scripts":        h.scripts,
		"name":           insp.ExceptionName(),
		"message":        insp.ExceptionMessage(),
		"code":           insp.Code(),
		"incidentID":     insp.ID(),
		"plainException": template.HTML(formatter.ExceptionPlainHTML(insp)), //nolint:gosec // escaped by the formatter
		"frames":         frames,
		"hasFrames":      len(frames) > 0,
		"handlers":       handlerNames(s.Run()),
		"tables":         h.tables(s.Request()),
	})

	return helper.Render("layout.html", nil)
}

func (h *PrettyPageHandler) stylesheet() (string, error) {
	css, err := templatesFS.ReadFile("templates/themes/" + h.theme + ".css")
	if err != nil {
		css, err = templatesFS.ReadFile("templates/themes/" + DefaultTheme + ".css")
	}
	if err != nil {
		return "", fmt.Errorf("read theme: %w", err)
	}
	return string(css), nil
}

type frameView struct {
	Index      int
	Function   string
	Type       string
	File       string
	Line       int
	Native     bool
	EditorHref string
	Snippet    []snippetLine
	Comments   []inspector.Comment
}

type snippetLine struct {
	Number  int
	Text    string
	Current bool
}

func (h *PrettyPageHandler) frameViews(frames []*inspector.Frame) ([]frameView, error) {
	views := make([]frameView, 0, len(frames))
	for i, f := range frames {
		href, err := h.EditorHref(f.File(), f.Line())
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		views = append(views, frameView{
			Index:      i,
			Function:   f.Function(),
			Type:       f.Type(),
			File:       f.File(),
			Line:       f.Line(),
			Native:     f.IsNative(),
			EditorHref: href,
			Snippet:    snippet(f),
			Comments:   f.Comments(""),
		})
	}
	return views, nil
}

// snippet returns the lines around the frame's line, numbered from 1.
func snippet(f *inspector.Frame) []snippetLine {
	if f.Line() <= 0 {
		return nil
	}
	start := max(f.Line()-1-snippetRadius, 0)
	lines, err := f.FileLines(start, 2*snippetRadius+1)
	if err != nil || len(lines) == 0 {
		return nil
	}

	out := make([]snippetLine, 0, len(lines))
	for i, text := range lines {
		n := start + i + 1
		out = append(out, snippetLine{Number: n, Text: text, Current: n == f.Line()})
	}
	return out
}

func handlerNames(run *ouch.Run) []string {
	if run == nil {
		return nil
	}
	handlers := run.Handlers()
	names := make([]string, 0, len(handlers))
	for _, hd := range handlers {
		names = append(names, fmt.Sprintf("%T", hd))
	}
	return names
}

type table struct {
	Title string
	Rows  []tableRow
}

type tableRow struct {
	Key   string
	Value string
}

func (h *PrettyPageHandler) tables(r *http.Request) []table {
	tables := []table{
		{Title: "Server/Request Data", Rows: serverData(r)},
		{Title: "Query Parameters", Rows: queryParams(r)},
	}
	if r != nil && r.PostForm != nil {
		tables = append(tables, table{Title: "Form Data", Rows: valueRows(r.PostForm)})
	}
	tables = append(tables, table{Title: "Cookies", Rows: cookieRows(r)})
	if h.environment != nil {
		tables = append(tables, table{Title: "Environment Variables", Rows: sortedRows(h.environment)})
	}
	return tables
}

func serverData(r *http.Request) []tableRow {
	if r == nil {
		return nil
	}

	data := map[string]string{
		"REMOTE_ADDR":     remoteAddr(r),
		"SERVER_SOFTWARE": "Go " + runtime.Version() + " " + runtime.GOOS,
		"SERVER_PROTOCOL": requestScheme(r) + "/" + strconv.Itoa(r.ProtoMajor) + "." + strconv.Itoa(r.ProtoMinor),
		"REQUEST_URI":     r.URL.RequestURI(),
		"REQUEST_METHOD":  r.Method,
		"SCRIPT_FILE":     os.Args[0],
		"PATH_INFO":       r.URL.Path,
		"QUERY_STRING":    r.URL.RawQuery,
		"HTTP_HOST":       r.Host,
	}
	if _, port, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		data["REMOTE_PORT"] = port
	}
	for name, values := range r.Header {
		key := "HTTP_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		data[key] = strings.Join(values, ", ")
	}
	return sortedRows(data)
}

// remoteAddr prefers the first X-Forwarded-For address over the connection address.
func remoteAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func requestScheme(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		first, _, _ := strings.Cut(proto, ",")
		scheme = strings.TrimSpace(first)
	}
	return strings.ToUpper(scheme)
}

func queryParams(r *http.Request) []tableRow {
	if r == nil {
		return nil
	}
	return valueRows(r.URL.Query())
}

func valueRows(values map[string][]string) []tableRow {
	rows := make([]tableRow, 0, len(values))
	for _, key := range slices.Sorted(maps.Keys(values)) {
		rows = append(rows, tableRow{Key: key, Value: strings.Join(values[key], ", ")})
	}
	return rows
}

func cookieRows(r *http.Request) []tableRow {
	if r == nil {
		return nil
	}
	cookies := r.Cookies()
	rows := make([]tableRow, 0, len(cookies))
	for _, c := range cookies {
		rows = append(rows, tableRow{Key: c.Name, Value: c.Value})
	}
	slices.SortStableFunc(rows, func(a, b tableRow) int { return strings.Compare(a.Key, b.Key) })
	return rows
}

func sortedRows(m map[string]string) []tableRow {
	rows := make([]tableRow, 0, len(m))
	for _, key := range slices.Sorted(maps.Keys(m)) {
		rows = append(rows, tableRow{Key: key, Value: m[key]})
	}
	return rows
}
