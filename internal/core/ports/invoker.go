package ports

// Invoker executes callables synchronously.
//
//go:generate mockgen -source=invoker.go -destination=mocks/mock_invoker.go -package=mocks
type Invoker interface {
	// Invoke calls fn with the given positional and named arguments and
	// returns its result. An error produced by the callable itself comes
	// back unchanged.
	Invoke(fn any, args []any, named map[string]any) (any, error)
}
