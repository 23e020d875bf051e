package libcache

import "context"

// NotAvailable is reported for diagnostics that could not be collected.
const NotAvailable = "n/a"

// Search path environment variables reported in Environment.
const (
	EnvPythonPath     = "PYTHONPATH"
	EnvJythonPath     = "JYTHONPATH"
	EnvClassPath      = "CLASSPATH"
	EnvIronPythonPath = "IRONPYTHONPATH"
)

// Environment is a snapshot of the interpreter used for an import run.
type Environment struct {
	PythonVersion    string   `json:"pythonVersion"`
	ModuleSearchPath []string `json:"moduleSearchPath"`
	PythonExecutable string   `json:"pythonExecutable"`
	Platform         string   `json:"platform"`
	PythonPath       string   `json:"pythonPath"`
	JythonPath       string   `json:"jythonPath"`
	ClassPath        string   `json:"classPath"`
	IronPythonPath   string   `json:"ironpythonPath"`
}

// UnavailableEnvironment returns diagnostics for an interpreter that could
// not be probed.
func UnavailableEnvironment(executable string) *Environment {
	return &Environment{
		PythonVersion:    NotAvailable,
		ModuleSearchPath: []string{},
		PythonExecutable: executable,
		Platform:         NotAvailable,
		PythonPath:       NotAvailable,
		JythonPath:       NotAvailable,
		ClassPath:        NotAvailable,
		IronPythonPath:   NotAvailable,
	}
}

// Interpreter provides access to the runtime that hosts the libraries.
type Interpreter interface {
	// Probe returns the interpreter's diagnostics.
	// Returns EUNAVAILABLE if the interpreter cannot be run or Robot
	// Framework is not importable from it.
	Probe(ctx context.Context) (*Environment, error)
}
