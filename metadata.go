package downshift

// Metadata carries the bookkeeping a Restore call needs to guarantee
// exact frame-count recovery. Prepare creates it; the caller passes it
// back unmodified to the matching Restore call. Restore works without
// it, but then returns whatever frame count the ratio rounding
// produces.
type Metadata struct {
	// OriginalFrames is the per-channel frame count of the buffer
	// given to Prepare.
	OriginalFrames int `json:"original_frames"`

	// OriginalRate is the sample rate of the buffer given to Prepare.
	OriginalRate int `json:"original_rate"`
}
