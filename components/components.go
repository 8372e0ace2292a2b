// Package components defines ECS components for the particle field.
//
// A particle is an entity carrying Position, Anchor and Body. Position is the
// only component mutated after creation.
package components
