package python

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/fwojciec/libcache"
	"github.com/tidwall/gjson"
)

// Ensure Interpreter implements libcache.Interpreter at compile time.
var _ libcache.Interpreter = (*Interpreter)(nil)

// probeScript prints the interpreter's diagnostics as one JSON object.
const probeScript = `import json, sys
try:
    import robot
    robot_ok = True
except ImportError:
    robot_ok = False
sys.stdout.write(json.dumps({
    "version": sys.version,
    "executable": sys.executable,
    "platform": sys.platform,
    "path": sys.path,
    "robot": robot_ok,
}))
`

// resolveScript imports the module named by argv[1] with the extra search
// paths from argv[3:] appended to sys.path. When argv[2] is set it also
// reports whether the module has that attribute. Output written during the
// import goes to stderr so stdout carries only the JSON result.
const resolveScript = `import importlib, inspect, json, sys
name, member = sys.argv[1], sys.argv[2]
sys.path.extend(sys.argv[3:])
out, sys.stdout = sys.stdout, sys.stderr

def source(module):
    for get in (inspect.getsourcefile, inspect.getfile):
        try:
            path = get(module)
        except TypeError:
            continue
        if path:
            return path
    return getattr(module, "__file__", None) or ""

try:
    module = importlib.import_module(name)
except ImportError as e:
    result = {"error": str(e), "importError": True}
except Exception as e:
    result = {"error": "%s: %s" % (type(e).__name__, e), "importError": False}
else:
    result = {"name": module.__name__, "source": source(module)}
    if hasattr(module, "__path__"):
        result["path"] = list(module.__path__)
    if member:
        result["member"] = hasattr(module, member)
out.write(json.dumps(result))
`

// Interpreter runs a Python executable to collect diagnostics and to import
// modules. The diagnostics are collected once; later calls return the first
// result.
type Interpreter struct {
	// Executable is the interpreter command name or path.
	Executable string

	// SearchPaths are appended to the interpreter's own module search path,
	// both in diagnostics and when importing modules.
	SearchPaths []string

	// Getenv reads search path variables. Defaults to os.Getenv.
	Getenv func(string) string

	once sync.Once
	env  *libcache.Environment
	err  error
}

// NewInterpreter returns an Interpreter for the given executable.
func NewInterpreter(executable string, searchPaths []string) *Interpreter {
	return &Interpreter{
		Executable:  executable,
		SearchPaths: searchPaths,
		Getenv:      os.Getenv,
	}
}

// Probe runs the interpreter and returns its diagnostics.
func (i *Interpreter) Probe(ctx context.Context) (*libcache.Environment, error) {
	i.once.Do(func() {
		i.env, i.err = i.probe(ctx)
	})
	return i.env, i.err
}

func (i *Interpreter) probe(ctx context.Context) (*libcache.Environment, error) {
	out, err := i.run(ctx, "-c", probeScript)
	if err != nil {
		return nil, err
	}

	env, robotAvailable, err := ParseProbe(out, i.getenv)
	if err != nil {
		return nil, err
	}
	if !robotAvailable {
		return nil, libcache.Errorf(libcache.EUNAVAILABLE, "Robot framework is not installed.")
	}
	if env.PythonExecutable == "" {
		env.PythonExecutable = i.Executable
	}
	env.ModuleSearchPath = append(env.ModuleSearchPath, i.SearchPaths...)
	return env, nil
}

// FindModule imports the module with the given dotted name in a fresh
// interpreter. Import failures are returned as ENOTFOUND with the
// interpreter's own message. Other exceptions raised while importing are
// returned as EINTERNAL.
func (i *Interpreter) FindModule(ctx context.Context, name string) (*Module, error) {
	mod, _, err := i.importModule(ctx, name, "")
	return mod, err
}

// HasMember imports mod again and reports whether it has an attribute named
// member.
func (i *Interpreter) HasMember(ctx context.Context, mod *Module, member string) (bool, error) {
	if !isIdentifier(member) {
		return false, nil
	}
	_, ok, err := i.importModule(ctx, mod.Name, member)
	return ok, err
}

func (i *Interpreter) importModule(ctx context.Context, name, member string) (*Module, bool, error) {
	if !IsValidName(name) {
		return nil, false, noModule(name)
	}
	args := append([]string{"-c", resolveScript, name, member}, i.SearchPaths...)
	out, err := i.run(ctx, args...)
	if err != nil {
		return nil, false, err
	}
	return ParseModule(out)
}

func (i *Interpreter) run(ctx context.Context, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, i.Executable, args...) //nolint:gosec // user provided interpreter
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, libcache.Errorf(libcache.EUNAVAILABLE, "python interpreter %q could not be run: %s", i.Executable, msg)
	}
	return stdout.Bytes(), nil
}

func (i *Interpreter) getenv(key string) string {
	if i.Getenv == nil {
		return os.Getenv(key)
	}
	return i.Getenv(key)
}

// ParseProbe decodes the probe script's output. It also reports whether
// Robot Framework was importable.
func ParseProbe(out []byte, getenv func(string) string) (*libcache.Environment, bool, error) {
	if !gjson.ValidBytes(out) {
		return nil, false, libcache.Errorf(libcache.EUNAVAILABLE, "unexpected interpreter output: %q", string(out))
	}

	res := gjson.ParseBytes(out)
	env := &libcache.Environment{
		PythonVersion:    res.Get("version").String(),
		PythonExecutable: res.Get("executable").String(),
		Platform:         res.Get("platform").String(),
		ModuleSearchPath: []string{},
		PythonPath:       lookupEnv(getenv, libcache.EnvPythonPath),
		JythonPath:       lookupEnv(getenv, libcache.EnvJythonPath),
		ClassPath:        lookupEnv(getenv, libcache.EnvClassPath),
		IronPythonPath:   lookupEnv(getenv, libcache.EnvIronPythonPath),
	}
	for _, p := range res.Get("path").Array() {
		env.ModuleSearchPath = append(env.ModuleSearchPath, p.String())
	}
	return env, res.Get("robot").Bool(), nil
}

// ParseModule decodes the resolve script's output. It also reports whether
// the requested member was found.
func ParseModule(out []byte) (*Module, bool, error) {
	if !gjson.ValidBytes(out) {
		return nil, false, libcache.Errorf(libcache.EUNAVAILABLE, "unexpected interpreter output: %q", string(out))
	}

	res := gjson.ParseBytes(out)
	if msg := res.Get("error"); msg.Exists() {
		if res.Get("importError").Bool() {
			return nil, false, libcache.Errorf(libcache.ENOTFOUND, "%s", msg.String())
		}
		return nil, false, libcache.Errorf(libcache.EINTERNAL, "%s", msg.String())
	}

	mod := &Module{
		Name:   res.Get("name").String(),
		Source: res.Get("source").String(),
	}
	if path := res.Get("path"); path.IsArray() {
		mod.Path = []string{}
		for _, p := range path.Array() {
			mod.Path = append(mod.Path, p.String())
		}
	}
	return mod, res.Get("member").Bool(), nil
}

func lookupEnv(getenv func(string) string, key string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return libcache.NotAvailable
}
