// Package serialization implements the binary model format used to persist
// perceptron weights.
//
//	Format Structure (little-endian):
//	  [4 bytes: float32 learning rate]
//	  [8 bytes: uint64 layer count]
//	  repeated layer count times:
//	    [8 bytes: uint64 rows]
//	    [8 bytes: uint64 cols]
//	    [rows*cols*4 bytes: float32 weights, row-major]
//
// Every layer is written and read back in order. Readers validate sizes
// before allocating and reject truncated streams, trailing bytes and layer
// sequences whose dimensions do not chain.
//
// Example usage:
//
//	model := &serialization.Model{LearningRate: 0.2, Layers: layers}
//	if err := serialization.WriteFile("model.bin", model); err != nil {
//	    return err
//	}
//
//	loaded, err := serialization.ReadFile("model.bin")
package serialization
