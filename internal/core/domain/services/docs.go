// Package services provides domain services that operate across the
// assignment and work-order aggregates.
//
// The package includes:
//   - StatusAggregator: the authoritative rollup from assignment statuses to
//     the single work-order-level aggregate status
//   - CountVector: the derived per-work-order multiset of assignment statuses
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design principles.
package services
