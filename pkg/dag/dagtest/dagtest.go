// Package dagtest provides test helpers for building [dag.DAG] fixtures,
// in particular unique synthetic node IDs that exercise the engine with
// realistic, non-sequential identifiers rather than "n0", "n1", ... .
package dagtest

import (
	"math/rand"

	"github.com/google/uuid"
)

// NodeID returns a new unique node ID, deterministic for a given rng
// seed. It is built from 16 bytes drawn from rng via
// [uuid.NewRandomFromReader], so a seeded rng reproduces the exact same
// sequence of IDs across test runs without relying on the package-level
// math/rand source the rest of the engine must avoid.
func NodeID(rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		// rand.Rand.Read never returns an error.
		panic(err)
	}
	return id.String()
}
