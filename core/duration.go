package core

// Duration marks raw integer types that may carry a duration.
// Wrapped integers such as `type Ticks uint32` qualify as well.
type Duration interface {
	~uint32 | ~uint64
}
