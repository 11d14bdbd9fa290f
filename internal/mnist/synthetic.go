package mnist

// Synthetic image geometry, matching MNIST.
const (
	SyntheticRows = 28
	SyntheticCols = 28
)

// Synthetic returns n deterministic 28x28 samples. Sample i has label
// i%10 and shows a bright horizontal band whose vertical position encodes
// the label, shifted sideways by (i/10)%4 pixels.
//
// This is not realistic digit data; it exercises the training pipeline
// without the dataset files.
func Synthetic(n int) *Dataset {
	d := &Dataset{Rows: SyntheticRows, Cols: SyntheticCols, Samples: make([]Sample, max(n, 0))}
	for i := range d.Samples {
		label := i % Classes
		shift := (i / Classes) % 4

		pixels := make([]byte, SyntheticRows*SyntheticCols)
		top := label * 2
		for row := top; row < top+8 && row < SyntheticRows; row++ {
			for col := 3 + shift; col < 21+shift; col++ {
				pixels[row*SyntheticCols+col] = 204
			}
		}
		d.Samples[i] = Sample{Label: uint8(label), Pixels: pixels}
	}
	return d
}
