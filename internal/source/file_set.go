package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
)

// FileSet owns every source file of a run. It is safe for concurrent use:
// check workers load files in parallel while the reporter resolves spans.
// A *File handed out by the set never moves.
type FileSet struct {
	mu      sync.RWMutex
	files   []*File
	latest  map[string]FileID
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{latest: map[string]FileID{}}
}

func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.mu.Lock()
	fileSet.baseDir = dir
	fileSet.mu.Unlock()
}

// BaseDir returns the directory relative paths are printed against; the
// working directory when unset.
func (fileSet *FileSet) BaseDir() string {
	fileSet.mu.RLock()
	dir := fileSet.baseDir
	fileSet.mu.RUnlock()
	if dir != "" {
		return dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return ""
}

// Add registers normalized content under path. Every call yields a new
// FileID; the path index then points at the newest one.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	file := &File{
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}

	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("file set is full: %w", err))
	}
	file.ID = FileID(n)
	fileSet.files = append(fileSet.files, file)
	fileSet.latest[file.Path] = file.ID
	return file.ID
}

// Load reads path from disk; a UTF-8 BOM is dropped and CRLF becomes LF.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	raw, bom := removeBOM(raw)
	if bom {
		flags |= FileHadBOM
	}
	raw, crlf := normalizeCRLF(raw)
	if crlf {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, raw, flags), nil
}

// AddVirtual registers in-memory content: tests, stdin, fuzz mutants.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get panics on an id the set never issued.
func (fileSet *FileSet) Get(id FileID) *File {
	f, ok := fileSet.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("source: unknown file id %d", id))
	}
	return f
}

func (fileSet *FileSet) Lookup(id FileID) (*File, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	if int(id) >= len(fileSet.files) {
		return nil, false
	}
	return fileSet.files[id], true
}

func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	id, ok := fileSet.latest[normalizePath(path)]
	return id, ok
}

func (fileSet *FileSet) Len() int {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return len(fileSet.files)
}

// Resolve maps both ends of span to 1-based line/column pairs.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// GetLine returns 1-based line n without its trailing newline; "" when out
// of range.
func (f *File) GetLine(n uint32) string {
	if n == 0 || int(n) > len(f.LineIdx)+1 {
		return ""
	}
	start := 0
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end := len(f.Content)
	if int(n) <= len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path for output. mode is one of "absolute",
// "relative" (to baseDir), "basename" or "auto"; anything else keeps it as is.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		return f.absPath()
	case "relative":
		return f.relPath(baseDir)
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		// длинные абсолютные пути сокращаем до имени файла
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}

func (f *File) absPath() string {
	abs, err := filepath.Abs(f.Path)
	if err != nil {
		return f.Path
	}
	return filepath.ToSlash(abs)
}

func (f *File) relPath(baseDir string) string {
	if f.Flags&FileVirtual != 0 {
		return f.Path
	}
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return f.Path
		}
		baseDir = wd
	}
	abs, err := filepath.Abs(f.Path)
	if err != nil {
		return f.Path
	}
	rel, err := filepath.Rel(baseDir, abs)
	if err != nil {
		return f.Path
	}
	return filepath.ToSlash(rel)
}
