// Package contracts holds the builtin ABI/BIN metadata for the BrandedToken
// contract suite and loaders for compiler artifacts.
package contracts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed artifacts/*.json
var builtinArtifacts embed.FS

// Metadata is the interface description and bytecode of one contract.
// A nil ABI or an empty BIN means the field is absent.
type Metadata struct {
	ABI interface{}
	BIN string
}

// Source resolves contract metadata by contract name.
type Source interface {
	Lookup(name string) (Metadata, bool)
}

// Registry is a read-only, map backed Source.
type Registry struct {
	entries map[string]Metadata
}

// NewRegistry copies entries into a new Registry.
func NewRegistry(entries map[string]Metadata) *Registry {
	r := &Registry{entries: make(map[string]Metadata, len(entries))}
	for name, md := range entries {
		r.entries[name] = md
	}
	return r
}

// Lookup implements Source.
func (r *Registry) Lookup(name string) (Metadata, bool) {
	if r == nil {
		return Metadata{}, false
	}
	md, ok := r.entries[name]
	return md, ok
}

// Names returns the registered contract names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var builtin *Registry

func init() {
	sub, err := fs.Sub(builtinArtifacts, "artifacts")
	if err != nil {
		panic(fmt.Sprintf("contracts: open embedded artifacts: %v", err))
	}
	builtin, err = loadArtifacts(sub)
	if err != nil {
		panic(fmt.Sprintf("contracts: load embedded artifacts: %v", err))
	}
}

// Builtin returns the metadata shipped with this package.
// Only ABIs are embedded; bytecode comes from LoadArtifactDir or overrides.
func Builtin() *Registry {
	return builtin
}

// LoadArtifactDir builds a Registry from every *.json compiler artifact in dir.
func LoadArtifactDir(dir string) (*Registry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifacts directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("artifacts path %s is not a directory", dir)
	}
	return loadArtifacts(os.DirFS(dir))
}

type artifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
	Bin          string          `json:"bin"`
}

func loadArtifacts(fsys fs.FS) (*Registry, error) {
	files, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, err
	}

	entries := make(map[string]Metadata, len(files))
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read artifact %s: %w", file, err)
		}

		var a artifact
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("failed to parse artifact %s: %w", file, err)
		}

		name := a.ContractName
		if name == "" {
			name = strings.TrimSuffix(path.Base(file), ".json")
		}

		md := Metadata{BIN: a.Bytecode}
		if md.BIN == "" {
			md.BIN = a.Bin
		}
		if md.BIN == "0x" {
			md.BIN = ""
		}
		if len(a.ABI) > 0 && string(a.ABI) != "null" {
			if err := json.Unmarshal(a.ABI, &md.ABI); err != nil {
				return nil, fmt.Errorf("failed to parse abi in artifact %s: %w", file, err)
			}
		}

		entries[name] = md
	}

	return &Registry{entries: entries}, nil
}

type chain []Source

// Chain returns a Source that consults sources in order and returns the first
// entry found. ABI and BIN are resolved independently, so a later source can
// supply the BIN for a contract whose ABI came from an earlier one.
func Chain(sources ...Source) Source {
	return chain(sources)
}

func (c chain) Lookup(name string) (Metadata, bool) {
	var (
		md    Metadata
		found bool
	)
	for _, src := range c {
		if src == nil {
			continue
		}
		entry, ok := src.Lookup(name)
		if !ok {
			continue
		}
		found = true
		if md.ABI == nil {
			md.ABI = entry.ABI
		}
		if md.BIN == "" {
			md.BIN = entry.BIN
		}
		if md.ABI != nil && md.BIN != "" {
			break
		}
	}
	return md, found
}
