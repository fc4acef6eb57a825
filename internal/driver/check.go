package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"os"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"lattice/internal/diag"
	"lattice/internal/observ"
	"lattice/internal/parser"
	"lattice/internal/source"
	"lattice/internal/testkit"
	"lattice/internal/trace"
)

// SourceExt is the file extension picked up by CheckDir.
const SourceExt = ".lt"

type CheckOptions struct {
	Jobs           int  // 0 — GOMAXPROCS
	MaxErrors      uint // per file, 0 — без лимита
	TreeInvariants bool // also run testkit.CheckTreeInvariants
	Progress       ProgressSink
	Timer          *observ.Timer
}

// CheckResult is the outcome for one file.
type CheckResult struct {
	Path       string
	FileID     source.FileID
	Bag        *diag.Bag
	ErrorCount int
	// Violation is a broken tree invariant. Nil for a sound tree, even
	// when the file has syntax errors.
	Violation error
	LoadErr   error
}

// CheckSummary aggregates a run.
type CheckSummary struct {
	Files           int
	FilesWithErrors int
	Errors          int
	Violations      int
	LoadFailures    int
}

func (s CheckSummary) String() string {
	return fmt.Sprintf("%d files, %d with errors, %d errors, %d invariant violations",
		s.Files, s.FilesWithErrors, s.Errors, s.Violations)
}

// OK reports whether every tree upheld its invariants and loaded fine.
func (s CheckSummary) OK() bool { return s.Violations == 0 && s.LoadFailures == 0 }

func Summarize(results []CheckResult) CheckSummary {
	s := CheckSummary{Files: len(results)}
	for _, r := range results {
		switch {
		case r.LoadErr != nil:
			s.LoadFailures++
			continue
		case r.Violation != nil:
			s.Violations++
		}
		if r.ErrorCount > 0 {
			s.FilesWithErrors++
			s.Errors += r.ErrorCount
		}
	}
	return s
}

// ListSourceFiles returns every *.lt file under dir in sorted order.
// Hidden directories are skipped, as are paths matched by dir/.gitignore.
func ListSourceFiles(dir string) ([]string, error) {
	var ignore *gitignore.GitIgnore
	if gi := filepath.Join(dir, ".gitignore"); fileExists(gi) {
		var err error
		if ignore, err = gitignore.CompileIgnoreFile(gi); err != nil {
			return nil, fmt.Errorf("read %s: %w", gi, err)
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, SourceExt) {
			return nil
		}
		if ignore != nil {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			if ignore.MatchesPath(filepath.ToSlash(rel)) {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CheckDir checks every *.lt file under dir.
func CheckDir(ctx context.Context, dir string, opts CheckOptions) (*source.FileSet, []CheckResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("list %s: %w", dir, err)
	}
	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(dir)
	results, err := CheckFiles(ctx, fileSet, files, opts)
	return fileSet, results, err
}

// CheckFiles parses and validates paths in parallel. Files are loaded up
// front in path order so FileIDs, and with them the diagnostic order, do
// not depend on scheduling. Results keep the order of paths.
func CheckFiles(ctx context.Context, fileSet *source.FileSet, paths []string, opts CheckOptions) ([]CheckResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	ctx, runSpan := trace.Start(ctx, trace.ScopeRun, "check")
	defer runSpan.Attr("files", strconv.Itoa(len(paths))).End("")

	emitQueued(opts.Progress, paths)
	results := make([]CheckResult, len(paths))

	loadIdx := timerBegin(opts.Timer, "load")
	for i, path := range paths {
		results[i].Path = path
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
		fileID, err := fileSet.Load(path)
		if err != nil {
			results[i].LoadErr = fmt.Errorf("load %s: %w", path, err)
			emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
			continue
		}
		results[i].FileID = fileID
	}
	timerEnd(opts.Timer, loadIdx)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i := range results {
		if results[i].LoadErr != nil {
			continue
		}
		file := fileSet.Get(results[i].FileID)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			checkOne(gctx, file, &results[i], opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	emit(opts.Progress, Event{Stage: StageValidate, Status: StatusDone})
	return results, nil
}

func checkOne(ctx context.Context, file *source.File, res *CheckResult, opts CheckOptions) {
	start := time.Now()
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+res.Path)
	defer func() {
		span.Attr("errors", strconv.Itoa(res.ErrorCount)).End("")
	}()

	emit(opts.Progress, Event{File: res.Path, Stage: StageParse, Status: StatusWorking})
	parseIdx := timerBegin(opts.Timer, "parse")
	parsed, violation := parseGuarded(ctx, file, opts.MaxErrors)
	timerEnd(opts.Timer, parseIdx)

	diags := parsedDiagnostics(parsed)
	res.Bag = diag.NewBag(len(diags) + 1)
	res.ErrorCount = len(diags)
	for _, d := range diags {
		res.Bag.Add(d)
	}

	if violation == nil && parsed != nil {
		emit(opts.Progress, Event{File: res.Path, Stage: StageValidate, Status: StatusWorking})
		validateIdx := timerBegin(opts.Timer, "validate")
		_, vspan := trace.Start(ctx, trace.ScopePhase, "validate")
		violation = testkit.CheckBlockStructure(parsed.Syntax())
		if violation == nil && opts.TreeInvariants {
			violation = testkit.CheckTreeInvariants(parsed.Syntax())
		}
		vspan.End(errorDetail(violation))
		timerEnd(opts.Timer, validateIdx)
	}

	if violation != nil {
		res.Violation = violation
		res.Bag.Merge(violationBag(file, violation))
		emit(opts.Progress, Event{File: res.Path, Stage: StageValidate, Status: StatusError, Err: violation, Elapsed: time.Since(start)})
		return
	}
	emit(opts.Progress, Event{File: res.Path, Stage: StageValidate, Status: StatusDone, Elapsed: time.Since(start)})
}

// parseGuarded turns a parser panic into an error so one bad file does not
// take down the whole run.
func parseGuarded(ctx context.Context, file *source.File, maxErrors uint) (parsed *parser.File, violation error) {
	defer func() {
		if r := recover(); r != nil {
			violation = &testkit.FuzzFailure{Input: string(file.Content), Panic: r}
		}
	}()
	parsed, err := parser.ParseFile(ctx, file, parser.Options{MaxErrors: maxErrors})
	if err != nil {
		return nil, err
	}
	return parsed, nil
}

func parsedDiagnostics(f *parser.File) []diag.Diagnostic {
	if f == nil {
		return nil
	}
	return f.Diagnostics()
}

func violationBag(file *source.File, violation error) *diag.Bag {
	bag := diag.NewBag(1)
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.InvTreeShape,
		Message:  "parser produced an inconsistent tree",
		Primary:  source.Span{File: file.ID},
		Notes:    []diag.Note{{Span: source.Span{File: file.ID}, Msg: violation.Error()}},
	}
	var inv *testkit.InvariantError
	if errors.As(violation, &inv) {
		d.Code = inv.Code
		d.Message = inv.Code.Title()
		if inv.Node.IsValid() {
			r := inv.Node.Range()
			d.Primary = source.Span{File: file.ID, Start: r.Start, End: r.End}
		}
	}
	bag.Add(d)
	return bag
}

func timerBegin(t *observ.Timer, name string) int {
	if t == nil {
		return -1
	}
	return t.Begin(name)
}

func timerEnd(t *observ.Timer, idx int) {
	if t != nil {
		t.End(idx, "")
	}
}

func errorDetail(err error) string {
	if err == nil {
		return ""
	}
	var inv *testkit.InvariantError
	if errors.As(err, &inv) {
		return inv.Code.ID()
	}
	return "failed"
}
