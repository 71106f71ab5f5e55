package registry

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"go.uber.org/zap"

	"github.com/gnolang/kyber/internal/config"
	"github.com/gnolang/kyber/scanner"
	"github.com/gnolang/kyber/script"
)

//go:embed scripts/*.kyb
var builtinScripts embed.FS

const builtinOrigin = "builtin"

var ErrDuplicateID = errors.New("duplicate refactoring id")

// Refactoring is a loaded script together with the place it came from.
type Refactoring struct {
	// Origin is the file the script was read from, prefixed with
	// "builtin:" for embedded scripts.
	Origin string
	Script *script.Script
}

func (r Refactoring) ID() string { return r.Script.ID() }

// LoadError reports a script that failed to load. It keeps the source so
// diagnostics can quote the offending line.
type LoadError struct {
	Path   string
	Source string
	Err    error
}

func (e *LoadError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

func (e *LoadError) Unwrap() error { return e.Err }

// Registry is the immutable catalog of refactorings, kept in load order.
// It is safe for concurrent use.
type Registry struct {
	entries []Refactoring
	byID    map[string]int
}

// New builds a registry from entries. Ids must be unique.
func New(entries ...Refactoring) (*Registry, error) {
	r := &Registry{
		entries: make([]Refactoring, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		id := e.ID()
		if prev, ok := r.byID[id]; ok {
			return nil, fmt.Errorf("%w %q in %s (already defined in %s)", ErrDuplicateID, id, e.Origin, r.entries[prev].Origin)
		}
		r.byID[id] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r, nil
}

// Builtin returns the refactorings embedded in the binary, in file-name order.
func Builtin() ([]Refactoring, error) {
	files, err := fs.ReadDir(builtinScripts, "scripts")
	if err != nil {
		return nil, err
	}

	entries := make([]Refactoring, 0, len(files))
	for _, f := range files {
		name := path.Join("scripts", f.Name())
		data, err := builtinScripts.ReadFile(name)
		if err != nil {
			return nil, err
		}
		r, err := parse(builtinOrigin+":"+f.Name(), data)
		if err != nil {
			return nil, err
		}
		entries = append(entries, r)
	}
	return entries, nil
}

// LoadFile reads and parses a single script file.
func LoadFile(filename string) (Refactoring, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Refactoring{}, err
	}
	return parse(filename, data)
}

func parse(origin string, data []byte) (Refactoring, error) {
	s, err := script.Parse(string(data))
	if err != nil {
		return Refactoring{}, &LoadError{Path: origin, Source: string(data), Err: err}
	}
	return Refactoring{Origin: origin, Script: s}, nil
}

// Load builds the catalog: embedded scripts first, then every script found
// in cfg.Scripts, in directory order. Refactorings listed in cfg.Disabled
// are left out.
func Load(logger *zap.Logger, cfg config.Config) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	all, err := Builtin()
	if err != nil {
		return nil, fmt.Errorf("loading builtin scripts: %w", err)
	}

	for _, dir := range cfg.Scripts {
		files, err := scanner.New(dir).Scan()
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", dir, err)
		}
		logger.Debug("Scanned script directory", zap.String("dir", dir), zap.Int("files", len(files)))

		for _, f := range files {
			r, err := LoadFile(f.Path)
			if err != nil {
				logger.Error("Error loading script", zap.String("file", f.Path), zap.Error(err))
				return nil, err
			}
			all = append(all, r)
		}
	}

	enabled := all[:0]
	for _, r := range all {
		if cfg.IsDisabled(r.ID()) {
			logger.Debug("Skipping disabled refactoring", zap.String("id", r.ID()))
			continue
		}
		enabled = append(enabled, r)
	}

	reg, err := New(enabled...)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded refactorings", zap.Int("count", reg.Len()))
	return reg, nil
}

// All returns the refactorings in catalog order.
func (r *Registry) All() []Refactoring {
	out := make([]Refactoring, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lookup finds a refactoring by id.
func (r *Registry) Lookup(id string) (Refactoring, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Refactoring{}, false
	}
	return r.entries[i], true
}

func (r *Registry) Len() int { return len(r.entries) }
