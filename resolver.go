package libcache

import (
	"context"
	"strings"
)

// StandardLibraryPackage is the package holding Robot Framework's bundled libraries.
const StandardLibraryPackage = "robot.libraries"

// StandardLibraryNames lists the bundled libraries that may be requested
// without their package qualifier.
var StandardLibraryNames = []string{
	"BuiltIn", "Collections", "DateTime", "Dialogs",
	"OperatingSystem", "Process", "Remote",
	"Screenshot", "String", "Telnet", "XML",
}

// IsStandardLibrary reports whether name is a bundled library short name.
func IsStandardLibrary(name string) bool {
	for _, n := range StandardLibraryNames {
		if n == name {
			return true
		}
	}
	return false
}

// QualifyName rewrites bundled library short names to their full import name.
// Other names are returned unchanged.
func QualifyName(name string) string {
	if IsStandardLibrary(name) {
		return StandardLibraryPackage + "." + name
	}
	return name
}

// SplitName splits a dotted import name into its parent and last segment.
// Parent is empty for undotted names.
func SplitName(name string) (parent, leaf string) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return "", name
	}
	return name[:i], name[i+1:]
}

// Unit is a library resolved to loadable code.
type Unit struct {
	// Name is the import name that was resolved, after alias substitution.
	Name string `json:"name"`

	// Module is the dotted module that was found on the search path.
	Module string `json:"module"`

	// Member is set when the library is a member of Module rather than
	// a module of its own.
	Member string `json:"member,omitempty"`

	// SourcePath is the file the unit is defined in. Empty when it cannot
	// be determined.
	SourcePath string `json:"sourcePath,omitempty"`
}

// Resolver maps requested library names to loadable units.
type Resolver interface {
	// Resolve finds the unit for a requested library name.
	// Returns ENOTFOUND if the name cannot be resolved.
	Resolve(ctx context.Context, name string) (*Unit, error)
}

// ResolveStrategy is one way of turning an import name into a unit.
// Strategies are tried in order until one returns a unit.
type ResolveStrategy interface {
	// Resolve returns the unit for name. A nil unit with a nil error means
	// the strategy does not apply and the previous failure stands.
	Resolve(ctx context.Context, name string) (*Unit, error)
}
