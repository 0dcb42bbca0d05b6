package assignment

import (
	"fmt"

	"fieldservice/internal/pkg/errs"
)

// QuoteStatus is the lifecycle status vocabulary for Quote assignments.
// It is disjoint from WorkStatus and deliberately simpler:
//
//	RfqAssigned ──> RfqIssued ──┐
//	      │                     ├──> RfqConfirmed ──> RfqReceived
//	      └─────────────────────┘
//
// RfqReceived acts as the quote's "completed" and never updates the parent
// aggregate; Canceled is reachable from every status, RfqReceived included.
type QuoteStatus int

const (
	// QuoteUnknown represents an invalid or undefined status.
	QuoteUnknown QuoteStatus = iota

	// RfqAssigned is the initial status of a quote assignment.
	RfqAssigned

	// RfqIssued indicates the request for quote has been issued.
	RfqIssued

	// RfqConfirmed indicates the person confirmed they will quote.
	RfqConfirmed

	// RfqReceived indicates the quote came back; terminal success.
	RfqReceived

	// QuoteCanceled is the terminal cancellation status.
	QuoteCanceled
)

func getQuoteStatusStrings() map[QuoteStatus]string {
	return map[QuoteStatus]string{
		QuoteUnknown:  "Unknown",
		RfqAssigned:   "RfqAssigned",
		RfqIssued:     "RfqIssued",
		RfqConfirmed:  "RfqConfirmed",
		RfqReceived:   "RfqReceived",
		QuoteCanceled: "Canceled",
	}
}

func getQuoteStatusKeys() map[QuoteStatus]string {
	//nolint:exhaustive // QuoteUnknown has no catalog key
	return map[QuoteStatus]string{
		RfqAssigned:   "wo_rfq_status.assigned",
		RfqIssued:     "wo_rfq_status.issued",
		RfqConfirmed:  "wo_rfq_status.confirmed",
		RfqReceived:   "wo_rfq_status.received",
		QuoteCanceled: "wo_rfq_status.canceled",
	}
}

// Validate checks if the QuoteStatus value is valid.
func (s QuoteStatus) Validate() error {
	if _, ok := getQuoteStatusKeys()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("quote status is invalid",
			fmt.Errorf("%d is not a valid quote status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s QuoteStatus) String() string {
	if str, ok := getQuoteStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Key returns the stable catalog key of the status, or the empty string for
// invalid values.
func (s QuoteStatus) Key() string {
	return getQuoteStatusKeys()[s]
}

// QuoteStatusFromKey resolves a stable catalog key to its QuoteStatus value.
// Returns an UnknownStatusLabel transition error for keys outside the vocabulary.
func QuoteStatusFromKey(key string) (QuoteStatus, error) {
	for status, k := range getQuoteStatusKeys() {
		if k == key {
			return status, nil
		}
	}
	return QuoteUnknown, errs.NewUnknownStatusLabelError(key)
}

// IsTerminal reports whether the status allows no further normal transitions.
func (s QuoteStatus) IsTerminal() bool {
	return s == RfqReceived || s == QuoteCanceled
}

// Issue transitions the status to RfqIssued.
func (s QuoteStatus) Issue(kind PersonKind) (QuoteStatus, error) {
	if s == RfqIssued {
		return QuoteUnknown, errs.NewAlreadyInTargetStateError(RfqIssued.String())
	}
	if s != RfqAssigned {
		return QuoteUnknown, errs.NewInvalidTransitionError(kind.String(), s.String(), RfqIssued.String())
	}
	return RfqIssued, nil
}

// Confirm transitions the status to RfqConfirmed. Only an assignment that is
// currently RfqAssigned or RfqIssued may confirm; an already confirmed one
// fails AlreadyInTargetState and a terminal one fails InvalidTransition.
func (s QuoteStatus) Confirm(kind PersonKind) (QuoteStatus, error) {
	if s == RfqConfirmed {
		return QuoteUnknown, errs.NewAlreadyInTargetStateError(RfqConfirmed.String())
	}
	if s != RfqAssigned && s != RfqIssued {
		return QuoteUnknown, errs.NewInvalidTransitionError(kind.String(), s.String(), RfqConfirmed.String())
	}
	return RfqConfirmed, nil
}

// Receive transitions the status to RfqReceived, the quote's "completed".
// Allowed from any status except RfqReceived itself.
func (s QuoteStatus) Receive(kind PersonKind) (QuoteStatus, error) {
	if s == RfqReceived {
		return QuoteUnknown, errs.NewAlreadyInTargetStateError(RfqReceived.String())
	}
	return RfqReceived, nil
}

// Cancel transitions the status to Canceled. Unlike the work vocabulary,
// cancellation is allowed even from RfqReceived: a received quote can still
// be withdrawn.
func (s QuoteStatus) Cancel(kind PersonKind) (QuoteStatus, error) {
	if s == QuoteCanceled {
		return QuoteUnknown, errs.NewAlreadyInTargetStateError(QuoteCanceled.String())
	}
	return QuoteCanceled, nil
}
