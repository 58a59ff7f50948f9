package handlers_test

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ouch/handlers"
)

const greeting = `{{ define "greeting" }}{{ .tpl.Slug .title }}
My name is {{ .name }}{{ end }}`

func TestTemplateHelper(t *testing.T) {
	t.Parallel()

	t.Run("variables", func(t *testing.T) {
		t.Parallel()

		helper := handlers.NewTemplateHelper(nil)
		assert.Empty(t, helper.Variables())

		vars := map[string]any{"name": "Ouch", "type": "go module"}
		helper.SetVariables(vars)
		assert.Equal(t, vars, helper.Variables())

		helper.SetVariables(nil)
		assert.NotNil(t, helper.Variables())
		assert.Empty(t, helper.Variables())
	})

	t.Run("render escapes values", func(t *testing.T) {
		t.Parallel()

		helper := handlers.NewTemplateHelper(template.Must(template.New("").Parse(greeting)))
		helper.SetVariables(map[string]any{"title": "Hello, World", "name": "Alice"})

		out, err := helper.Render("greeting", map[string]any{"name": "B<o>b"})
		require.NoError(t, err)
		assert.Equal(t, "hello-world\nMy name is B&lt;o&gt;b", out)
		assert.Equal(t, "Alice", helper.Variables()["name"])
	})

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()

		helper := handlers.NewTemplateHelper(template.Must(template.New("").Parse(greeting)))
		_, err := helper.Render("missing", nil)
		require.ErrorIs(t, err, handlers.ErrTemplateNotFound)

		_, err = handlers.NewTemplateHelper(nil).Render("greeting", nil)
		require.ErrorIs(t, err, handlers.ErrTemplateNotFound)
	})
}

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Hello, world!", "hello-world"},
		{"Potato class", "potato-class"},
		{"Crème brûlée", "creme-brulee"},
		{"Server/Request Data", "serverrequest-data"},
		{"snake_case and-dash", "snake_case-and-dash"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, handlers.Slug(tt.in))
		})
	}
}

func TestEscapeButPreserveURIs(t *testing.T) {
	t.Parallel()

	t.Run("links uris inside escaped markup", func(t *testing.T) {
		t.Parallel()

		got := handlers.EscapeButPreserveURIs("This is a <a href=''>http://google.com</a> test string")
		assert.Equal(t,
			template.HTML(`This is a &lt;a href=&#39;&#39;&gt;<a href="http://google.com" target="_blank">http://google.com</a>&lt;/a&gt; test string`),
			got,
		)
	})

	t.Run("keeps paths and query strings", func(t *testing.T) {
		t.Parallel()

		got := handlers.EscapeButPreserveURIs("see https://pkg.go.dev/net/http?tab=doc.")
		assert.Equal(t,
			template.HTML(`see <a href="https://pkg.go.dev/net/http?tab=doc" target="_blank">https://pkg.go.dev/net/http?tab=doc</a>.`),
			got,
		)
	})

	t.Run("plain text is only escaped", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, template.HTML("a &amp; b"), handlers.EscapeButPreserveURIs("a & b"))
	})
}
