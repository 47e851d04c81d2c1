// Package pagination provides a generic bounded page window over a fetched
// collection. It is independent of the rest of the client: it only consumes
// the slice handed to it and exposes clamped navigation bounds.
//
//	window := pagination.New(readings, 5)
//	window.Next()
//	visible := window.Page()
//	fmt.Printf("page %d of %d", window.Index(), window.TotalPages())
package pagination
