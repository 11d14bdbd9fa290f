package serialization

// Validate checks that every layer is non-empty, within limits, and that
// consecutive layers chain (layer i's column count equals layer i-1's row
// count).
func (m *Model) Validate() error {
	if len(m.Layers) > MaxLayerCount {
		return tooLarge("layer count", -1, "got %d, max %d", len(m.Layers), MaxLayerCount)
	}
	for i, layer := range m.Layers {
		if layer == nil || layer.IsEmpty() {
			return corrupt("shape", i, "empty layer")
		}
		if layer.Len() > MaxLayerElements {
			return tooLarge("shape", i, "%s has %d weights, max %d", layer.Shape(), layer.Len(), MaxLayerElements)
		}
		if i > 0 && layer.Cols() != m.Layers[i-1].Rows() {
			return corrupt("shape", i, "%s does not follow %s", layer.Shape(), m.Layers[i-1].Shape())
		}
	}
	return nil
}

func checkDims(layer int, rows, cols uint64) error {
	if rows == 0 || cols == 0 {
		return corrupt("shape", layer, "zero dimension %dx%d", rows, cols)
	}
	if rows > MaxLayerElements || cols > MaxLayerElements/rows {
		return tooLarge("shape", layer, "%dx%d exceeds %d weights", rows, cols, MaxLayerElements)
	}
	return nil
}
