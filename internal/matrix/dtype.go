package matrix

// Float is the constraint for matrix element types.
type Float interface {
	~float32 | ~float64
}
