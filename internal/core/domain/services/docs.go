// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the back office. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - MessageClassifier: A domain service that classifies courier status texts
//     against the per-courier dictionary and records texts it has never seen
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
