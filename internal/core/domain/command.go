// Package domain holds the core types for the environment bootstrapper.
package domain

import "strings"

// Command describes a delegated tool invocation.
type Command struct {
	// Name is the executable to invoke, resolved against PATH if relative.
	Name string
	// Args are the arguments passed to the executable.
	Args []string
	// Env contains extra environment variables in "KEY=VALUE" format,
	// appended to the inherited process environment.
	Env []string
	// Dir is the working directory for the invocation. Empty means inherit.
	Dir string
}

// String renders the command line for logging.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}
