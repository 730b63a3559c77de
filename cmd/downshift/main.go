// Command downshift prepares audio files for a bandwidth-limited
// medium and restores them afterwards.
//
// Prepare resamples each file so that content up to the cutoff
// frequency survives the medium's low sample rate, writing a
// "_prepared" WAV plus a JSON sidecar with the restore metadata.
// Restore reverses the transform using that sidecar.
//
// Usage:
//
//	downshift -mode prepare -cutoff 17000 song.wav
//	downshift -mode restore song_prepared.wav
//	downshift -mode prepare -profile Fast -out ./prepared ./album
//	downshift -mode restore -last ./prepared
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/downshift-audio/downshift"
	"github.com/downshift-audio/downshift/internal/audiofile"
	"github.com/downshift-audio/downshift/internal/batch"
	"github.com/downshift-audio/downshift/internal/profile"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("downshift: ")
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		modeFlag     = flag.String("mode", "prepare", "transform mode: prepare or restore")
		cutoffHz     = flag.Float64("cutoff", 17000, "cutoff frequency in Hz")
		engineFlag   = flag.String("engine", "accurate", "resampling engine: accurate or fast")
		profileName  = flag.String("profile", "", "named profile to load settings from")
		profilePath  = flag.String("profiles", defaultProfilePath(), "path to the profile store")
		listProfiles = flag.Bool("list-profiles", false, "list stored profiles and exit")
		useLast      = flag.Bool("last", false, "reuse the profile and output directory of the previous run")
		outDir       = flag.String("out", "", "output directory (default: next to each input)")
		workers      = flag.Int("workers", 0, "worker count (default: number of CPUs)")
		bitDepth     = flag.Int("bits", 0, "output WAV bit depth: 16, 24, or 32 (default: source depth)")
		verbose      = flag.Bool("v", false, "log each file as it finishes")
	)
	flag.Parse()

	store, err := profile.Open(*profilePath)
	if err != nil {
		return err
	}

	if *listProfiles {
		for _, name := range store.Names() {
			p, _ := store.Get(name)
			fmt.Printf("%-12s cutoff=%g Hz engine=%s format=%s\n",
				name, p.CutoffHz, p.Engine, p.OutputFormat)
		}
		return nil
	}

	if flag.NArg() == 0 {
		flag.Usage()
		return fmt.Errorf("no input files")
	}

	if *useLast {
		prev := store.AppSettings()
		if *profileName == "" {
			*profileName = prev.LastProfile
		}
		if *outDir == "" {
			*outDir = prev.OutputDir
		}
	}

	cutoff, eng := *cutoffHz, *engineFlag
	if *profileName != "" {
		p, err := store.Get(*profileName)
		if err != nil {
			return err
		}
		cutoff, eng = p.CutoffHz, p.Engine
	}

	mode, err := downshift.ParseMode(*modeFlag)
	if err != nil {
		return err
	}
	engine, err := downshift.ParseEngine(eng)
	if err != nil {
		return err
	}
	cfg := &downshift.Config{CutoffHz: cutoff, Engine: engine}
	if err := cfg.Validate(); err != nil {
		return err
	}

	files, err := expandInputs(flag.Args())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no supported audio files among the inputs")
	}

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	// Remember this run's settings for -last.
	if err := store.SetAppSettings(profile.Settings{
		LastProfile: *profileName,
		OutputDir:   *outDir,
	}); err != nil {
		log.Printf("saving settings: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := batch.Options{
		Mode:      mode,
		CutoffHz:  cutoff,
		Engine:    engine,
		OutputDir: *outDir,
		BitDepth:  *bitDepth,
		Workers:   *workers,
	}
	if *verbose {
		opts.OnResult = func(r batch.Result) {
			if r.Err != nil {
				log.Printf("FAIL %s: %v", r.Input, r.Err)
				return
			}
			log.Printf("%s -> %s", r.Input, r.Output)
		}
	}

	results := batch.Run(ctx, files, opts)

	failed := batch.Failed(results)
	log.Printf("%s: %d file(s) done, %d failed", mode, len(results)-failed, failed)
	if !*verbose {
		for _, r := range results {
			if r.Err != nil {
				log.Printf("FAIL %s: %v", r.Input, r.Err)
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted: %d of %d file(s) processed", len(results), len(files))
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

// expandInputs resolves arguments to a sorted list of audio files,
// walking one level into directories.
func expandInputs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			path := filepath.Join(arg, e.Name())
			if audiofile.IsSupported(path) {
				files = append(files, path)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func defaultProfilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "downshift-profiles.json"
	}
	return filepath.Join(dir, "downshift", "profiles.json")
}
