package loader

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spendscope-dev/spendscope/internal/model"
)

var (
	// ErrUnsupportedFormat is returned for file extensions no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported input format")
	// ErrEmptySource is returned when a source has no header row.
	ErrEmptySource = errors.New("source has no header row")
	// ErrUnknownSheet is returned when a requested workbook sheet is missing.
	ErrUnknownSheet = errors.New("sheet not found")
)

// DefaultPattern is the discovery glob used when no source path is given.
const DefaultPattern = "*spend*"

// Options controls how a source is read.
type Options struct {
	Separator rune   // 0 selects the reader's default
	Sheet     string // empty selects the first sheet
}

// Reader converts a source file into a RawTable.
type Reader interface {
	Read(r io.ReadSeeker, opts Options) (*model.RawTable, error)
	Format() string
}

// Registry maps file extensions to readers.
type Registry struct {
	readers map[string]Reader
}

// FileInfo describes a discoverable source file.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register binds a reader to one or more extensions. Panics on duplicate extension.
func (r *Registry) Register(rd Reader, exts ...string) {
	for _, ext := range exts {
		key := normalizeExt(ext)
		if _, ok := r.readers[key]; ok {
			panic("duplicate reader extension: " + key)
		}
		r.readers[key] = rd
	}
}

// Get returns the reader for a file path or extension, or nil.
func (r *Registry) Get(pathOrExt string) Reader {
	return r.readers[normalizeExt(filepath.Ext(pathOrExt))]
}

// Supports reports whether a reader is registered for the path's extension.
func (r *Registry) Supports(path string) bool {
	return r.Get(path) != nil
}

// DefaultRegistry returns a registry with all built-in readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&DelimitedReader{Name: "csv", DefaultSeparator: ','}, ".csv", ".txt")
	r.Register(&DelimitedReader{Name: "tsv", DefaultSeparator: '\t'}, ".tsv")
	r.Register(&WorkbookReader{}, ".xlsx", ".xlsm")
	r.Register(&LegacyWorkbookReader{}, ".xls")
	return r
}

// Open reads the source at path with the reader registered for its extension.
func (r *Registry) Open(path string, opts Options) (*model.RawTable, error) {
	rd := r.Get(path)
	if rd == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer f.Close()

	table, err := rd.Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	table.Source = path

	slog.Info("loaded source",
		slog.String("source", path),
		slog.String("format", rd.Format()),
		slog.Int("columns", len(table.Headers)),
		slog.Int("rows", len(table.Records)))
	return table, nil
}

// Open reads a source with the default registry.
func Open(path string, opts Options) (*model.RawTable, error) {
	return DefaultRegistry().Open(path, opts)
}

// Scan returns supported files in dir whose lowercased name matches pattern.
func Scan(dir, pattern string) ([]FileInfo, error) {
	pattern = strings.ToLower(pattern)
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading source dir: %w", err)
	}

	reg := DefaultRegistry()
	var files []FileInfo
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if !reg.Supports(name) {
			continue
		}
		if ok, _ := filepath.Match(pattern, strings.ToLower(name)); !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}
		files = append(files, FileInfo{
			Name: name,
			Path: filepath.Join(dir, name),
			Size: info.Size(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
