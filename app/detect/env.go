package detect

import (
	"context"
	"os"
	"strings"
)

// DefaultEnvVar is the environment variable overriding the detected color scheme.
const DefaultEnvVar = "GPT_LOAD_COLOR_SCHEME"

// EnvDetector reads "dark" or "light" from an environment variable.
type EnvDetector struct {
	Var    string
	Lookup func(string) (string, bool)
}

// NewEnvDetector makes a detector for the variable, DefaultEnvVar if empty.
func NewEnvDetector(name string) *EnvDetector {
	if name == "" {
		name = DefaultEnvVar
	}
	return &EnvDetector{Var: name, Lookup: os.LookupEnv}
}

// Name returns the detector name.
func (e *EnvDetector) Name() string { return "env:" + e.Var }

// Detect parses the variable value.
func (e *EnvDetector) Detect(context.Context) (prefersDark, ok bool) {
	val, found := e.Lookup(e.Var)
	if !found {
		return false, false
	}
	return parseScheme(val)
}

// parseScheme accepts dark and light in any case, optionally quoted.
func parseScheme(val string) (prefersDark, ok bool) {
	switch strings.ToLower(strings.Trim(strings.TrimSpace(val), `"'`)) {
	case "dark":
		return true, true
	case "light":
		return false, true
	default:
		return false, false
	}
}
