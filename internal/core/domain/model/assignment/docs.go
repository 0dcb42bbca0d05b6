// Package assignment implements the per-assignment lifecycle state machine
// of the dual-level status engine.
//
// A Record links one person to one work order and carries its own lifecycle
// status. Work and Recall assignments use the WorkStatus vocabulary
// (Assigned, Issued, Confirmed, InProgress, InProgressAndHold, Completed,
// Canceled); Quote assignments use the disjoint QuoteStatus vocabulary
// (RfqAssigned, RfqIssued, RfqConfirmed, RfqReceived, Canceled). The two
// vocabularies are modeled as a tagged union keyed by the job type and
// mixing them is rejected at the boundary.
//
// Transition guards depend on the kind of assigned person (Technician,
// Supplier, Vendor); the separate ForceSet entry points bypass guards for
// administrative correction while preserving vocabulary validation and the
// timestamp side effects.
package assignment
