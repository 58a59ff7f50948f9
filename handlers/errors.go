package handlers

import "errors"

var (
	// ErrUnknownEditor is returned by SetEditor for names that were never registered.
	ErrUnknownEditor = errors.New("unknown editor identifier")

	// ErrEditorResolve is returned when an editor resolver produces an empty link.
	ErrEditorResolve = errors.New("editor resolver returned an empty link")

	// ErrTemplateNotFound is returned when rendering a template name the helper does not know.
	ErrTemplateNotFound = errors.New("template not found")
)
