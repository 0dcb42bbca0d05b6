package workorder

import (
	"fmt"

	"fieldservice/internal/pkg/errs"
)

// Status represents the work-order-level aggregate status. It is always
// either a pure function of the work order's non-canceled assignment
// statuses, computed by the status aggregator, or the terminal override
// Canceled, which freezes further recomputation.
//
// Assignment-level code never writes this value directly.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status of a work order before any
	// assignment exists. The aggregator never emits it.
	Created

	// Quote indicates the work order only carries active quote-type
	// assignments (no active work assignments remain).
	Quote

	// PickedUp indicates the work order has a pickup reference and no
	// active assignments remain.
	PickedUp

	// Assigned indicates at least one assignment is still in Assigned.
	Assigned

	// Issued indicates at least one assignment is Issued and none is Assigned.
	Issued

	// Confirmed indicates work has been confirmed but not started.
	Confirmed

	// InProgress indicates work is underway.
	InProgress

	// InProgressAndHold indicates all in-flight work is paused.
	InProgressAndHold

	// Completed indicates every active assignment has been completed.
	Completed

	// Canceled is the terminal override. Once set, the aggregator
	// short-circuits and the status never changes again.
	Canceled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "Unknown",
		Created:           "Created",
		Quote:             "Quote",
		PickedUp:          "PickedUp",
		Assigned:          "Assigned",
		Issued:            "Issued",
		Confirmed:         "Confirmed",
		InProgress:        "InProgress",
		InProgressAndHold: "InProgressAndHold",
		Completed:         "Completed",
		Canceled:          "Canceled",
	}
}

// getStatusKeys returns the stable catalog keys for each valid status.
// The core always operates on these keys; storage-level numeric ids are
// resolved through the type catalog.
func getStatusKeys() map[Status]string {
	//nolint:exhaustive // Unknown has no catalog key
	return map[Status]string{
		Created:           "wo_status.created",
		Quote:             "wo_status.quote",
		PickedUp:          "wo_status.picked_up",
		Assigned:          "wo_status.assigned",
		Issued:            "wo_status.issued",
		Confirmed:         "wo_status.confirmed",
		InProgress:        "wo_status.in_progress",
		InProgressAndHold: "wo_status.in_progress_and_hold",
		Completed:         "wo_status.completed",
		Canceled:          "wo_status.canceled",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusKeys()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid work order status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Key returns the stable catalog key of the status, or the empty string
// for invalid values.
func (s Status) Key() string {
	return getStatusKeys()[s]
}

// StatusFromKey resolves a stable catalog key to its Status value.
// Returns an UnknownStatusLabel transition error for keys outside the vocabulary.
func StatusFromKey(key string) (Status, error) {
	for status, k := range getStatusKeys() {
		if k == key {
			return status, nil
		}
	}
	return Unknown, errs.NewUnknownStatusLabelError(key)
}
