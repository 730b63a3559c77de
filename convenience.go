package downshift

// PrepareMono is a convenience function for one-shot mono processing.
// It wraps the samples in a single-channel buffer, runs Prepare, and
// unwraps the result.
func PrepareMono(samples []float64, sampleRate int, cutoffHz float64, eng Engine) ([]float64, *Metadata, error) {
	buf := &Buffer{Data: [][]float64{samples}, SampleRate: sampleRate}
	out, meta, err := Prepare(buf, cutoffHz, eng)
	if err != nil {
		return nil, nil, err
	}
	return out.Data[0], meta, nil
}

// RestoreMono is the mono counterpart of PrepareMono for the restore
// direction.
func RestoreMono(samples []float64, sampleRate int, cutoffHz float64, eng Engine, meta *Metadata) ([]float64, error) {
	buf := &Buffer{Data: [][]float64{samples}, SampleRate: sampleRate}
	out, err := Restore(buf, cutoffHz, eng, meta)
	if err != nil {
		return nil, err
	}
	return out.Data[0], nil
}
