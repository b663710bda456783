package derp

// Wrap binds a callable and its cache options into a reusable memoized
// function. Each invocation behaves like CallWith with the bound options.
//
//	fetch := derp.Wrap[[]byte](cache, download, derp.CallOptions{
//		ExpiresAfter: time.Hour,
//	})
//	body, err := fetch("https://example.com")
func Wrap[T any](c *Cache, fn any, opts CallOptions) func(args ...any) (T, error) {
	return func(args ...any) (T, error) {
		return CallWith[T](c, opts, fn, args...)
	}
}
