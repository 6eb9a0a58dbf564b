package domain

// Environment describes a provisioned isolated environment, ready for step
// execution.
type Environment struct {
	// Dir is the absolute path of the environment directory.
	Dir string

	// Python is the absolute path of the environment's interpreter binary.
	Python string

	// BaseInterpreter is the host interpreter that created the environment.
	BaseInterpreter string

	// Env holds "KEY=VALUE" pairs realizing activation: VIRTUAL_ENV, the
	// PATH prepend, and PYTHONHOME suppression.
	Env []string

	// Created reports whether this run created the environment directory.
	Created bool

	// Fresh reports whether the environment stamp matched the current
	// manifest, meaning installed dependencies are already current.
	Fresh bool
}
