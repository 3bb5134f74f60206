// Package kernel provides core domain primitives shared by the exception
// handling model.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - DateSource: A sum type carrying either a literal date or a deferred
//     date computation, resolved once at evaluation time
//   - Working-day arithmetic used by monitoring rule conditions
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
