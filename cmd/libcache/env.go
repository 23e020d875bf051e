package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/libcache"
)

// Run executes the env command. When the interpreter is unavailable the
// placeholder diagnostics are still printed and an error is returned.
func (c *EnvCmd) Run(deps *Dependencies) error {
	env, probeErr := deps.Interpreter.Probe(deps.Ctx)
	if probeErr != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", libcache.ErrorMessage(probeErr))
		env = libcache.UnavailableEnvironment(deps.Config.Python)
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	return probeErr
}
