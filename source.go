package asngen

import (
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions are the file extensions recognized as ASN.1 modules.
var DefaultExtensions = []string{".asn", ".asn1"}

// Source lists module files in processing order.
type Source interface {
	// Files returns the module files known to this source. Files are
	// compiled in the returned order.
	Files() ([]File, error)
}

// File is one module file found by a Source.
type File struct {
	// Path identifies the file in logs and diagnostics.
	Path string

	base string
	open func() (io.ReadCloser, error)
}

// Open returns the file content.
func (f File) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, &fs.PathError{Op: "open", Path: f.Path, Err: fs.ErrNotExist}
	}
	return f.open()
}

// ReadAll returns the whole file content.
func (f File) ReadAll() ([]byte, error) {
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// ModuleName is the file name without directory and extension. It names a
// module whose header is missing.
func (f File) ModuleName() string {
	base := f.base
	if base == "" {
		base = filepath.Base(f.Path)
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// SourceOption configures a source.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	extensions []string
}

func defaultSourceConfig() sourceConfig {
	return sourceConfig{extensions: DefaultExtensions}
}

// WithExtensions sets the file extensions to recognize for this source.
// An empty string matches files with no extension.
func WithExtensions(exts ...string) SourceOption {
	return func(c *sourceConfig) {
		c.extensions = exts
	}
}

func osFile(p string) File {
	return File{
		Path: p,
		base: filepath.Base(p),
		open: func() (io.ReadCloser, error) { return os.Open(p) },
	}
}

// --- Dir Source (single directory) ---

type dirSource struct {
	path   string
	config sourceConfig
}

// Dir creates a Source over the module files of one directory (no
// recursion), in file name order.
func Dir(dir string, opts ...SourceOption) (Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "open", Path: dir, Err: os.ErrInvalid}
	}
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &dirSource{path: dir, config: cfg}, nil
}

// MustDir is like Dir but panics on error.
func MustDir(dir string, opts ...SourceOption) Source {
	src, err := Dir(dir, opts...)
	if err != nil {
		panic(err)
	}
	return src
}

func (s *dirSource) Files() ([]File, error) {
	extSet := makeExtensionSet(s.config.extensions)

	// os.ReadDir returns entries sorted by file name.
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, err
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		p := filepath.Join(s.path, entry.Name())
		if hasValidExtension(p, extSet) {
			files = append(files, osFile(p))
		}
	}
	return files, nil
}

// --- DirTree Source (recursive directory) ---

type treeSource struct {
	root   string
	config sourceConfig
}

// DirTree creates a Source over every module file below root, in lexical
// path order.
func DirTree(root string, opts ...SourceOption) (Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "open", Path: root, Err: os.ErrInvalid}
	}
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &treeSource{root: root, config: cfg}, nil
}

// MustDirTree is like DirTree but panics on error.
func MustDirTree(root string, opts ...SourceOption) Source {
	src, err := DirTree(root, opts...)
	if err != nil {
		panic(err)
	}
	return src
}

func (s *treeSource) Files() ([]File, error) {
	extSet := makeExtensionSet(s.config.extensions)
	var files []File
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !hasValidExtension(p, extSet) {
			return nil
		}
		files = append(files, osFile(p))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// --- Paths Source (explicit file list) ---

type pathsSource struct {
	paths []string
}

// Paths creates a Source over the given files, in the given order. The
// files are not checked until they are read.
func Paths(paths ...string) Source {
	return &pathsSource{paths: paths}
}

func (s *pathsSource) Files() ([]File, error) {
	files := make([]File, 0, len(s.paths))
	for _, p := range s.paths {
		files = append(files, osFile(p))
	}
	return files, nil
}

// --- FS Source (for embed.FS, testing) ---

type fsSource struct {
	name   string
	fsys   fs.FS
	config sourceConfig
}

// FS creates a Source backed by an fs.FS (e.g., embed.FS), in lexical path
// order. The name prefixes reported paths.
func FS(name string, fsys fs.FS, opts ...SourceOption) Source {
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &fsSource{name: name, fsys: fsys, config: cfg}
}

func (s *fsSource) Files() ([]File, error) {
	extSet := makeExtensionSet(s.config.extensions)
	var files []File
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !hasValidExtension(p, extSet) {
			return nil
		}
		files = append(files, File{
			Path: s.name + ":" + p,
			base: path.Base(p),
			open: func() (io.ReadCloser, error) { return s.fsys.Open(p) },
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// --- Multi Source (combines multiple sources) ---

type multiSource struct {
	sources []Source
}

// Multi combines multiple sources into one. Files of earlier sources come
// first. A path listed by more than one source is kept once.
func Multi(sources ...Source) Source {
	return &multiSource{sources: sources}
}

func (s *multiSource) Files() ([]File, error) {
	var files []File
	for _, src := range s.sources {
		f, err := src.Files()
		if err != nil {
			return nil, err
		}
		for _, file := range f {
			if slices.ContainsFunc(files, func(seen File) bool { return seen.Path == file.Path }) {
				continue
			}
			files = append(files, file)
		}
	}
	return files, nil
}

// --- Helpers ---

func makeExtensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return set
}

func hasValidExtension(p string, extSet map[string]struct{}) bool {
	ext := strings.ToLower(path.Ext(filepath.ToSlash(p)))
	_, ok := extSet[ext]
	return ok
}
