package python

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/fwojciec/libcache"
)

// Module is a module located on the search path.
type Module struct {
	Name string

	// Source is the module's source file. Empty for namespace packages.
	Source string

	// Path lists the directories searched for submodules. Nil for plain
	// modules, which cannot contain submodules.
	Path []string
}

// IsPackage reports whether the module can contain submodules.
func (m *Module) IsPackage() bool {
	return m.Path != nil
}

// ModuleLoader locates importable modules and inspects their members.
type ModuleLoader interface {
	// FindModule locates the module with the given dotted name.
	FindModule(ctx context.Context, name string) (*Module, error)

	// HasMember reports whether mod has an attribute named member.
	HasMember(ctx context.Context, mod *Module, member string) (bool, error)
}

var (
	_ ModuleLoader = (*Finder)(nil)
	_ ModuleLoader = (*Interpreter)(nil)
)

// Finder locates modules on a search path by inspecting the file system,
// without running an interpreter.
type Finder struct {
	SearchPath []string
}

// NewFinder returns a Finder searching the given directories in order.
func NewFinder(searchPath []string) *Finder {
	return &Finder{SearchPath: searchPath}
}

// FindModule locates the module with the given dotted name.
// Returns ENOTFOUND with the interpreter's "No module named" wording if any
// segment of the name cannot be found.
func (f *Finder) FindModule(ctx context.Context, name string) (*Module, error) {
	if !IsValidName(name) {
		return nil, noModule(name)
	}

	segments := strings.Split(name, ".")
	dirs := f.SearchPath
	var mod *Module
	for i, segment := range segments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		prefix := strings.Join(segments[:i+1], ".")
		if mod != nil && !mod.IsPackage() {
			return nil, libcache.Errorf(libcache.ENOTFOUND,
				"No module named '%s'; '%s' is not a package", prefix, mod.Name)
		}

		found := findInDirs(prefix, segment, dirs)
		if found == nil {
			return nil, noModule(prefix)
		}
		mod = found
		dirs = mod.Path
	}
	return mod, nil
}

// HasMember scans the module's source for a top-level binding of member.
// Extension modules cannot be inspected and are assumed to define it.
// Namespace packages have no source and define nothing.
func (f *Finder) HasMember(ctx context.Context, mod *Module, member string) (bool, error) {
	switch {
	case mod.Source == "":
		return false, nil
	case isExtension(mod.Source):
		return isIdentifier(member), nil
	}
	return DefinesMember(mod.Source, member)
}

// findInDirs applies one step of the import path search. A regular package,
// an extension module or a source module in the earliest directory wins, in
// that order. Namespace package portions are only used when none exists
// anywhere.
func findInDirs(name, segment string, dirs []string) *Module {
	var portions []string
	for _, dir := range dirs {
		if dir == "" {
			dir = "."
		}
		base := filepath.Join(dir, segment)

		if isDir(base) {
			init := filepath.Join(base, "__init__.py")
			if isFile(init) {
				return &Module{Name: name, Source: init, Path: []string{base}}
			}
		}
		if ext := findExtension(dir, segment); ext != "" {
			return &Module{Name: name, Source: ext}
		}
		if isFile(base + ".py") {
			return &Module{Name: name, Source: base + ".py"}
		}
		if isDir(base) {
			portions = append(portions, base)
		}
	}
	if len(portions) > 0 {
		return &Module{Name: name, Path: portions}
	}
	return nil
}

// findExtension returns the compiled extension module for segment in dir,
// e.g. "speedlib.cpython-312-x86_64-linux-gnu.so" or "speedlib.pyd".
func findExtension(dir, segment string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || !isExtension(name) {
			continue
		}
		stem := strings.TrimSuffix(strings.TrimSuffix(name, ".so"), ".pyd")
		if stem == segment || strings.HasPrefix(stem, segment+".") {
			return filepath.Join(dir, name)
		}
	}
	return ""
}

func isExtension(path string) bool {
	return strings.HasSuffix(path, ".so") || strings.HasSuffix(path, ".pyd")
}

// IsValidName reports whether name is a dotted sequence of identifiers.
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, segment := range strings.Split(name, ".") {
		if !isIdentifier(segment) {
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

func noModule(name string) error {
	return libcache.Errorf(libcache.ENOTFOUND, "No module named '%s'", name)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
