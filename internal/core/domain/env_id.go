package domain

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// EnvStamp records the identity of a provisioned environment so later runs can
// tell whether the installed dependency set is still current.
type EnvStamp struct {
	// EnvID is the identity hash computed by GenerateEnvID.
	EnvID string `json:"envId"`
	// Interpreter is the resolved interpreter binary used to create the environment.
	Interpreter string `json:"interpreter"`
	// CreatedAt is when the stamp was written.
	CreatedAt time.Time `json:"createdAt"`
}

// NewEnvStamp builds a stamp for an environment created by interpreter with
// the given manifest content installed.
func NewEnvStamp(interpreter string, manifest []byte) EnvStamp {
	return EnvStamp{
		EnvID:       GenerateEnvID(interpreter, manifest),
		Interpreter: interpreter,
		CreatedAt:   time.Now().UTC(),
	}
}

// GenerateEnvID computes a deterministic identity for an isolated environment
// from the interpreter that created it and the manifest content installed into
// it. Any change to either yields a different ID.
func GenerateEnvID(interpreter string, manifest []byte) string {
	h := xxhash.New()
	_, _ = h.WriteString(interpreter)
	_, _ = h.Write([]byte{0}) // Separator
	_, _ = h.Write(manifest)
	return fmt.Sprintf("%016x", h.Sum64())
}
