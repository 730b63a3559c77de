// Package batch runs the transform over many files with a bounded
// worker pool. Failures are per-file: one bad input never aborts the
// rest of the run.
package batch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/downshift-audio/downshift"
	"github.com/downshift-audio/downshift/internal/audiofile"
	"github.com/downshift-audio/downshift/internal/sidecar"
)

// Output name suffixes by mode.
const (
	preparedSuffix = "_prepared"
	restoredSuffix = "_restored"
)

// Options configures a batch run.
type Options struct {
	// Mode selects prepare or restore.
	Mode downshift.Mode

	// CutoffHz and Engine are the transform settings.
	CutoffHz float64
	Engine   downshift.Engine

	// OutputDir receives the processed files. Empty means next to the
	// input.
	OutputDir string

	// BitDepth is the PCM depth for written WAV files. Zero keeps the
	// source depth.
	BitDepth int

	// Workers bounds the pool size. Zero or negative uses GOMAXPROCS.
	Workers int

	// OnResult, when set, is called once per finished file, from
	// multiple goroutines.
	OnResult func(Result)
}

// Result reports the outcome for one input file.
type Result struct {
	Input  string
	Output string
	Err    error
}

// Run processes the given files concurrently and returns one Result
// per input, in completion order. Cancelling ctx stops the run after
// the files already in flight.
func Run(ctx context.Context, files []string, opts Options) []Result {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan string)
	results := make([]Result, 0, len(files))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				res := processFile(path, opts)
				if opts.OnResult != nil {
					opts.OnResult(res)
				}
				mu.Lock()
				results = append(results, res)
				mu.Unlock()
			}
		}()
	}

feed:
	for _, path := range files {
		if ctx.Err() != nil {
			break
		}
		select {
		case jobs <- path:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

// Failed counts results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

func processFile(path string, opts Options) Result {
	res := Result{Input: path}

	buf, srcDepth, err := audiofile.Read(path)
	if err != nil {
		res.Err = err
		return res
	}

	cfg := &downshift.Config{CutoffHz: opts.CutoffHz, Engine: opts.Engine}
	tr, err := downshift.New(cfg)
	if err != nil {
		res.Err = err
		return res
	}

	var meta *downshift.Metadata
	if opts.Mode == downshift.ModeRestore {
		sc, err := sidecar.Load(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// No sidecar. Restore still works; the output frame count
			// is whatever the ratio rounding produces.
		case err != nil:
			res.Err = err
			return res
		default:
			if err := sc.Verify(opts.CutoffHz, opts.Engine); err != nil {
				res.Err = err
				return res
			}
			meta = &sc.Metadata
		}
	}

	out, outMeta, err := tr.Apply(opts.Mode, buf, meta)
	if err != nil {
		res.Err = err
		return res
	}

	res.Output = outputPath(path, opts)
	bitDepth := opts.BitDepth
	if bitDepth == 0 {
		bitDepth = srcDepth
	}
	if err := audiofile.WriteWAV(res.Output, out, bitDepth); err != nil {
		res.Err = err
		return res
	}

	if opts.Mode == downshift.ModePrepare {
		sc := sidecar.For(outMeta, opts.CutoffHz, opts.Engine)
		if err := sidecar.Write(res.Output, sc); err != nil {
			// The audio was written; surface the sidecar failure so the
			// user knows the file cannot be restored exactly.
			os.Remove(res.Output)
			res.Err = err
			res.Output = ""
		}
	}
	return res
}

func outputPath(input string, opts Options) string {
	dir := opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	suffix := preparedSuffix
	if opts.Mode == downshift.ModeRestore {
		suffix = restoredSuffix
		// Avoid stacking suffixes when restoring a prepared file.
		stem = strings.TrimSuffix(stem, preparedSuffix)
	}
	return filepath.Join(dir, stem+suffix+".wav")
}
