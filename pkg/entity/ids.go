package entity

// IDAllocator hands out sequential ids per entity kind. The arena owns one
// and passes it to every constructor.
type IDAllocator struct {
	next map[Kind]ID
}

// NewIDAllocator creates an allocator with every counter at zero.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: make(map[Kind]ID)}
}

// Next returns the next id for kind. A nil allocator always returns 0.
func (a *IDAllocator) Next(kind Kind) ID {
	if a == nil {
		return 0
	}
	id := a.next[kind]
	a.next[kind] = id + 1
	return id
}

// Reset zeroes every counter.
func (a *IDAllocator) Reset() {
	if a == nil {
		return
	}
	for k := range a.next {
		delete(a.next, k)
	}
}
