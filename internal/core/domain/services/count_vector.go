package services

import (
	"fieldservice/internal/core/domain/model/assignment"
)

// CountVector is the derived multiset of assignment statuses for one work
// order. It is computed on demand from the work order's assignment records
// and never stored.
//
// Only Work/Recall records enter the status buckets: Total counts every
// Work/Recall record including disabled and canceled ones, Active counts the
// non-disabled non-canceled subset, and the per-status counts cover the
// active subset only. Quote records never affect the aggregate status; they
// only surface through HasActiveQuote, which drives the no-active-assignment
// fallback branch.
type CountVector struct {
	// Total is the number of Work/Recall records, active or not.
	Total int

	// Active is the number of active (non-disabled, non-canceled)
	// Work/Recall records.
	Active int

	// HasActiveQuote reports whether any active quote-type record exists.
	HasActiveQuote bool

	counts map[assignment.WorkStatus]int
}

// BuildCountVector derives the count vector from a work order's assignment
// records. The slice should hold every record of the work order, including
// disabled ones; the vector does its own filtering.
func BuildCountVector(records []*assignment.Record) CountVector {
	vector := CountVector{
		counts: make(map[assignment.WorkStatus]int),
	}

	for _, record := range records {
		if record.JobType().IsQuote() {
			if record.IsActive() {
				vector.HasActiveQuote = true
			}
			continue
		}

		vector.Total++
		if !record.IsActive() {
			continue
		}

		vector.Active++
		vector.counts[record.WorkStatus()]++
	}

	return vector
}

// Count returns the number of active Work/Recall records in the given status.
func (v CountVector) Count(status assignment.WorkStatus) int {
	return v.counts[status]
}
