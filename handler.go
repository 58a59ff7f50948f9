package ouch

//go:generate mockgen -source=handler.go -destination=mocks/mock_handler.go -package=mocks

// Signal is passed to Next to control the chain.
type Signal int

const (
	// Continue hands control to the next handler.
	Continue Signal = 0

	// Quit stops the chain after the current handler.
	Quit Signal = 0x10
)

// Next is the continuation a handler invokes when it is done. The output is collected into
// the list passed to the completion callback. Only the first call of a given Next has any effect.
type Next func(output any, sig Signal)

// Handler processes an error. Handle must eventually call next exactly once, either before
// returning or later from another goroutine. A handler that never calls next stalls its chain.
type Handler interface {
	Handle(s *Scope, next Next)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(s *Scope, next Next)

// Handle calls fn(s, next).
func (fn HandlerFunc) Handle(s *Scope, next Next) {
	fn(s, next)
}
