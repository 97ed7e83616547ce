// Package driver orchestrates per-file checks: load, elide, scan every line,
// collect diagnostics. Directory runs fan out across an errgroup.
package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"lintcheck/internal/checks"
	"lintcheck/internal/diag"
	"lintcheck/internal/observ"
	"lintcheck/internal/source"
)

// CheckOptions configures a run.
type CheckOptions struct {
	// MaxDiagnostics bounds the bag per file.
	MaxDiagnostics int
	// MinConfidence drops findings below this weight.
	MinConfidence diag.Confidence
	// Categories limits reporting to the listed codes; empty means all.
	Categories map[diag.Code]bool
	// Extensions selects files during directory walks.
	Extensions []string
	// EnableTimings records phase durations into CheckResult.Timing.
	EnableTimings bool
	// Cache, when non-nil, is consulted by content hash before scanning and
	// updated after.
	Cache *DiskCache
	// Progress, when non-nil, receives per-file events during CheckDir.
	Progress Sink
}

// CheckResult is the outcome for one file.
type CheckResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Timing *observ.Report
}

// CheckFile loads and checks a single file.
func CheckFile(path string, opts CheckOptions) (*source.FileSet, CheckResult, error) {
	fileSet := source.NewFileSetWithBase(filepath.Dir(path))
	fileID, err := fileSet.Load(path)
	if err != nil {
		return fileSet, CheckResult{}, err
	}
	return fileSet, checkLoaded(fileSet, fileID, path, opts), nil
}

// checkLoaded runs the checks over an already-loaded file. Raw findings are
// cached by content hash; filtering happens after the cache so one cache
// entry serves every filter configuration.
func checkLoaded(fileSet *source.FileSet, fileID source.FileID, path string, opts CheckOptions) CheckResult {
	file := fileSet.Get(fileID)

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}

	raw, fromCache := cachedFindings(opts.Cache, file, opts.MaxDiagnostics)
	if !fromCache {
		raw = runChecks(file, opts.MaxDiagnostics, timer)
		storeFindings(opts.Cache, file, raw)
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	sink := diag.FilterReporter{
		Next:          diag.BagReporter{Bag: bag},
		MinConfidence: opts.MinConfidence,
		Categories:    opts.Categories,
	}
	for _, d := range raw.Items() {
		sink.Report(d.Code, d.Confidence, d.Primary, d.Message, d.Notes)
	}
	bag.Sort()

	result := CheckResult{Path: path, FileID: fileID, Bag: bag}
	if timer != nil {
		report := timer.Report()
		result.Timing = &report
	}
	return result
}

// runChecks is the scan proper: elide once, then every line through every
// per-line check.
func runChecks(file *source.File, maxDiagnostics int, timer *observ.Timer) *diag.Bag {
	elideIdx := -1
	if timer != nil {
		elideIdx = timer.Begin("elide")
	}
	lines := source.ElideLines(file)
	if timer != nil {
		timer.End(elideIdx, file.Path)
	}

	scanIdx := -1
	if timer != nil {
		scanIdx = timer.Begin("scan")
	}
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	for i := 0; i < lines.NumLines(); i++ {
		checks.CheckLoopCondition(lines, i, reporter)
	}
	if timer != nil {
		timer.End(scanIdx, "")
	}
	return bag
}

// ListFiles returns the sorted candidate files under dir.
func ListFiles(dir string, extensions []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range extensions {
			if ext == want {
				files = append(files, path)
				break
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Deterministic order regardless of filesystem.
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every matching file under dir in parallel.
//
// I/O failures for individual files become IOLoadFileError diagnostics in
// that file's bag rather than failing the run.
func CheckDir(ctx context.Context, dir string, opts CheckOptions, jobs int) (*source.FileSet, []CheckResult, error) {
	files, err := ListFiles(dir, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Preload every file; the FileSet is not safe for concurrent mutation.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		emit(opts.Progress, path, StatusQueued, 0)
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Index-per-goroutine result slots, no mutex needed.
	results := make([]CheckResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				if loadErr, hadError := loadErrors[path]; hadError {
					bag := diag.NewBag(opts.MaxDiagnostics)
					bag.Add(diag.Diagnostic{
						Code:       diag.IOLoadFileError,
						Confidence: diag.ConfidenceMax,
						Message:    "failed to load file: " + loadErr.Error(),
						Primary:    source.Span{},
					})
					results[i] = CheckResult{Path: path, FileID: 0, Bag: bag}
					emit(opts.Progress, path, StatusError, bag.Len())
					return nil
				}

				emit(opts.Progress, path, StatusChecking, 0)
				results[i] = checkLoaded(fileSet, fileIDs[path], path, opts)
				emit(opts.Progress, path, StatusDone, results[i].Bag.Len())
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}

	return fileSet, results, nil
}
