// Package workorder implements the work-order aggregate of the dual-level
// status engine.
//
// A work order carries one aggregate status that is always either derived
// from the statuses of its active assignments (by the status aggregator in
// the services package) or the terminal Canceled override. The aggregate
// status is never written by assignment-level code.
//
// The package follows Domain-Driven Design principles with private fields,
// constructor validation, and explicit state transition rules.
package workorder
