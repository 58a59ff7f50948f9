// Package logger builds slog loggers and provides attribute helpers shared by the
// dispatcher and the error handlers.
//
// # Construction
//
//	import "github.com/dmitrymomot/ouch/core/logger"
//
//	log := logger.New(logger.WithDevelopment("api"))               // text, debug
//	log := logger.New(logger.WithProduction("api"))                // JSON, info
//	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
//
//	logger.SetAsDefault(log)
//
// Context values can be attached to every record logged with a context:
//
//	log := logger.New(logger.WithContextValue("request_id", requestIDKey{}))
//	log.InfoContext(ctx, "handled")
//
// # Attributes
//
// Helpers return an empty slog.Attr for nil input, so they can be passed unconditionally:
//
//	log.Error("unhandled error",
//		logger.IncidentID(insp.ID()),
//		logger.ExceptionName(insp.ExceptionName()),
//		logger.StatusCode(insp.Code()),
//		logger.Error(insp.Exception()),
//		logger.Frames(insp.Frames(), 5),
//	)
package logger
