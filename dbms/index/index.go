package index

// SSet is the ordered-set surface shared by every index implementation.
type SSet[T any] interface {
	// Size returns the number of stored elements.
	Size() int
	// Add inserts x and reports whether it was absent.
	Add(x T) bool
	// Remove deletes x and returns it, or false if x was not stored.
	Remove(x T) (T, bool)
	// Find returns the smallest stored element >= x, or false if none.
	Find(x T) (T, bool)
}
