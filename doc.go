// Package downshift reversibly remaps an audio signal's spectrum into a
// narrower band so that frequency-limited AI separation models can
// process it without losing content above the model's cutoff.
//
// Prepare compresses the frequency axis by r = cutoff / (rate/2) and
// stretches the signal in time by 1/r; the output is tagged at the
// original sample rate so downstream tools treat it as ordinary audio.
// Restore applies the inverse ratio, recovering the original pitch and
// duration; when round-trip metadata is supplied it also recovers the
// exact original frame count.
//
// # Quick Start
//
//	buf := downshift.NewBufferFromInterleaved(samples, 2, 44100)
//	prepared, meta, err := downshift.Prepare(buf, 17000, downshift.EngineAccurate)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// ... run the separation model over prepared ...
//	restored, err := downshift.Restore(processed, 17000, downshift.EngineAccurate, meta)
//
// # Engines
//
// Two interchangeable resampling engines are provided:
//
//   - [EngineAccurate]: FFT-domain resampling. A Prepare→Restore round
//     trip reproduces the input exactly up to floating-point rounding
//     (it passes a null test), at O(n log n) cost.
//   - [EngineFast]: polyphase Kaiser windowed-sinc resampling. Near
//     linear in the buffer length, with a small reconstruction error
//     confined to the filter's transition band near the cutoff.
//
// # Round-Trip Contract
//
// Restore must be called with the same sample rate, cutoff, and engine
// that Prepare used; the core does not persist or verify them, and a
// mismatch silently yields a wrong-pitch, wrong-length result. The
// sidecar files written by the command-line front end carry a settings
// digest so its Restore path can fail fast instead.
//
// A cutoff at or above the Nyquist frequency makes the transform an
// identity: both Prepare and Restore pass the signal through unchanged.
//
// # Concurrency
//
// A Transform holds no mutable state. All operations read their inputs
// and allocate fresh outputs, so concurrent calls on independent
// buffers need no locking.
package downshift
