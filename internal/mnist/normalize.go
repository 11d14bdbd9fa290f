package mnist

const (
	// OnValue and OffValue are the one-hot target levels. Sigmoid outputs
	// never reach 0 or 1, so targets stay strictly inside the interval.
	OnValue  float32 = 0.99
	OffValue float32 = 0.01

	// Classes is the number of digit labels.
	Classes = 10
)

// NormalizePixels maps bytes 0..255 to (p/255)*0.99 + 0.01, i.e. into
// [0.01, 1.0].
func NormalizePixels(pixels []byte) []float32 {
	out := make([]float32, len(pixels))
	for i, p := range pixels {
		out[i] = (float32(p)/255)*0.99 + 0.01
	}
	return out
}

// OneHot returns a classes-long target with OnValue at label and OffValue
// elsewhere. Labels outside [0, classes) yield an all-OffValue vector.
func OneHot(label, classes int) []float32 {
	out := make([]float32, classes)
	for i := range out {
		out[i] = OffValue
	}
	if label >= 0 && label < classes {
		out[label] = OnValue
	}
	return out
}

// Input returns the normalized pixel vector of s.
func (s Sample) Input() []float32 {
	return NormalizePixels(s.Pixels)
}

// Target returns the one-hot target vector of s.
func (s Sample) Target(classes int) []float32 {
	return OneHot(int(s.Label), classes)
}
