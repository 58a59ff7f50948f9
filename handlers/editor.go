package handlers

import (
	"fmt"
	"maps"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// EditorsFile is the path of the editors file relative to the XDG config directories.
const EditorsFile = "ouch/editors.yaml"

// EditorFunc resolves a link that opens file at line in an editor.
type EditorFunc func(file string, line int) string

// builtinEditors are URL templates; %file and %line are replaced by the escaped values.
var builtinEditors = map[string]string{
	"sublime":  "subl://open?url=file://%file&line=%line",
	"textmate": "txmt://open?url=file://%file&line=%line",
	"emacs":    "emacs://open?url=file://%file&line=%line",
	"macvim":   "mvim://open/?url=file://%file&line=%line",
	"vscode":   "vscode://file/%file:%line",
}

// editors is the registry of known editors and the one in use.
type editors struct {
	mu      sync.RWMutex
	known   map[string]EditorFunc
	current EditorFunc
}

func newEditors() *editors {
	e := &editors{known: make(map[string]EditorFunc, len(builtinEditors))}
	for name, tmpl := range builtinEditors {
		e.known[name] = templateEditor(tmpl)
	}
	return e
}

func (e *editors) add(name string, fn EditorFunc) {
	e.mu.Lock()
	e.known[name] = fn
	e.mu.Unlock()
}

func (e *editors) use(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	fn, ok := e.known[name]
	if !ok {
		known := slices.Sorted(maps.Keys(e.known))
		return fmt.Errorf("%w: %q; known editors: %s", ErrUnknownEditor, name, strings.Join(known, ", "))
	}
	e.current = fn
	return nil
}

func (e *editors) useFunc(fn EditorFunc) {
	e.mu.Lock()
	e.current = fn
	e.mu.Unlock()
}

func (e *editors) href(file string, line int) (string, error) {
	e.mu.RLock()
	fn := e.current
	e.mu.RUnlock()

	if fn == nil {
		return "", nil
	}
	href := fn(file, line)
	if href == "" {
		return "", ErrEditorResolve
	}
	return href, nil
}

// templateEditor substitutes %file and %line in tmpl with their URL-escaped values.
func templateEditor(tmpl string) EditorFunc {
	return func(file string, line int) string {
		return strings.NewReplacer(
			"%file", url.PathEscape(file),
			"%line", url.PathEscape(strconv.Itoa(line)),
		).Replace(tmpl)
	}
}

// DefaultEditorsFile returns the first ouch/editors.yaml found in the XDG config directories.
func DefaultEditorsFile() (string, error) {
	return xdg.SearchConfigFile(EditorsFile)
}

// readEditorsFile parses a YAML map of editor name to URL template:
//
//	idea: "idea://open?file=%file&line=%line"
//	zed: "zed://file/%file:%line"
func readEditorsFile(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read editors file: %w", err)
	}

	var out map[string]string
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse editors file %s: %w", path, err)
	}
	return out, nil
}
