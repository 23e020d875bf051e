// Package python resolves library names against a Python module search path
// and probes the Python interpreter for environment diagnostics.
//
// Resolution mirrors the interpreter's import system closely enough to find
// the source file of a library without executing any of its code: regular
// packages, plain modules and namespace packages are recognised, and dotted
// names are resolved segment by segment within their parent package.
package python
