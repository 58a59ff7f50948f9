// Package handlers provides ready-made ouch handlers.
//
// JSONResponseHandler answers with a JSON error payload, PrettyPageHandler renders an HTML
// page with the stack frames, their source and the request details, and LogHandler writes a
// structured log entry. Each one sends a response and quits the chain when a response writer
// is available, or passes its rendering on as the handler output otherwise.
//
// Typical usage:
//
//	run := ouch.New(ouch.WithHandlers(
//		handlers.NewLogHandler(logger),
//		handlers.NewJSONResponseHandler(handlers.OnlyForAjaxOrJSON()),
//		handlers.NewPrettyPageHandler(handlers.WithEditor("vscode")),
//	))
//	mux.Handle("/", ouch.Middleware(run)(app))
//
// The same chain can be built from the environment:
//
//	var cfg handlers.Config
//	config.MustLoad(&cfg)
//	run, err := cfg.Run(logger)
//
// # Editors
//
// Frame links on the page open files in a local editor. Built-in editors are sublime,
// textmate, emacs, macvim and vscode. More can be registered with AddEditor using a URL
// template where %file and %line are replaced, or loaded from a YAML file:
//
//	idea: "idea://open?file=%file&line=%line"
//	zed: "zed://file/%file:%line"
//
// DefaultEditorsFile looks for ouch/editors.yaml in the XDG config directories.
package handlers
