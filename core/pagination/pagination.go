package pagination

// DefaultPageSize is the number of items shown per page when no explicit
// size is configured.
const DefaultPageSize = 5

// Window derives a bounded page from an ordered collection. The index is
// 1-based and always satisfies 1 <= index <= TotalPages; navigation clamps
// at the boundaries with no wraparound. Replacing the backing collection
// resets the index to 1 unconditionally.
//
// Window borrows the item slice and never mutates or re-sorts it. The zero
// value is usable and behaves as an empty single-page collection.
type Window[T any] struct {
	items []T
	size  int
	index int
}

// New creates a window over items with the given page size. A non-positive
// size falls back to DefaultPageSize.
func New[T any](items []T, size int) *Window[T] {
	w := &Window[T]{size: size}
	w.SetItems(items)
	return w
}

// SetItems replaces the backing collection wholesale and resets the index
// to 1, even when the previous index would still be valid.
func (w *Window[T]) SetItems(items []T) {
	w.items = items
	w.index = 1
}

// Page returns the slice of items visible at the current index.
func (w *Window[T]) Page() []T {
	start := (w.Index() - 1) * w.Size()
	if start >= len(w.items) {
		return nil
	}
	end := min(start+w.Size(), len(w.items))
	return w.items[start:end]
}

// Index returns the current 1-based page index, clamped into
// [1, TotalPages].
func (w *Window[T]) Index() int {
	idx := w.index
	if idx < 1 {
		idx = 1
	}
	if total := w.TotalPages(); idx > total {
		idx = total
	}
	return idx
}

// Size returns the fixed page size.
func (w *Window[T]) Size() int {
	if w.size <= 0 {
		return DefaultPageSize
	}
	return w.size
}

// TotalItems returns the length of the backing collection.
func (w *Window[T]) TotalItems() int {
	return len(w.items)
}

// TotalPages returns max(1, ceil(TotalItems/Size)): an empty collection
// still presents one (empty) page.
func (w *Window[T]) TotalPages() int {
	if len(w.items) == 0 {
		return 1
	}
	size := w.Size()
	return (len(w.items) + size - 1) / size
}

// Next advances one page. At the last page it is a no-op.
func (w *Window[T]) Next() {
	if idx := w.Index(); idx < w.TotalPages() {
		w.index = idx + 1
	}
}

// Previous steps back one page. At the first page it is a no-op.
func (w *Window[T]) Previous() {
	if idx := w.Index(); idx > 1 {
		w.index = idx - 1
	}
}

// HasNext reports whether Next would advance.
func (w *Window[T]) HasNext() bool {
	return w.Index() < w.TotalPages()
}

// HasPrevious reports whether Previous would step back.
func (w *Window[T]) HasPrevious() bool {
	return w.Index() > 1
}
