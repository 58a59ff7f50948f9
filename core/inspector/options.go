package inspector

type options struct {
	parser      StackParser
	sourcePaths []string
	code        int
	id          string
}

// Option configures an Inspector.
type Option func(*options)

// WithStackParser replaces the default stack parser.
func WithStackParser(p StackParser) Option {
	return func(o *options) {
		o.parser = p
	}
}

// WithSourcePaths adds roots searched for source files that were recorded with relative paths,
// e.g. a module checkout for binaries built with -trimpath. Ignored when WithStackParser is used.
func WithSourcePaths(paths ...string) Option {
	return func(o *options) {
		o.sourcePaths = append(o.sourcePaths, paths...)
	}
}

// WithCode sets an explicit status code, bypassing derivation from the error.
func WithCode(code int) Option {
	return func(o *options) {
		o.code = code
	}
}

// WithID sets the incident identifier instead of generating a UUID.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}
