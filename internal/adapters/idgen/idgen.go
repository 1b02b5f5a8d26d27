// Package idgen provides the planner's IDGenerator collaborator
// (spec.md §6 "ID generator"). The teacher repo has no equivalent of
// its own — prisma-go's CLI never mints row identities itself — so
// this is grounded on the pack's google/uuid dependency
// (n9te9-go-graphql-federation-gateway, opentofu-opentofu), using its
// time-ordered UUIDv7 so freshly created nodes sort roughly by
// creation order, matching the CUID-like behavior spec.md §9 requires
// without needing a bespoke CUID implementation.
package idgen

import "github.com/google/uuid"

// Generator mints fresh node identities.
type Generator struct{}

// New returns a ready-to-use Generator. It carries no state: uuid.NewV7
// reads its own clock and randomness per call.
func New() *Generator {
	return &Generator{}
}

// NewID implements domain.IDGenerator.
func (g *Generator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// uuid.NewV7 only fails if the runtime's random source is
		// broken; fall back to a pure-random v4 rather than panic.
		return uuid.New().String()
	}
	return id.String()
}
