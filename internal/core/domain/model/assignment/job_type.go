package assignment

import (
	"fmt"

	"fieldservice/internal/pkg/errs"
)

// JobType determines which status vocabulary an assignment uses and whether
// it participates in the work-order-level aggregation. Work and Recall share
// the work vocabulary; Quote uses the disjoint RFQ vocabulary and never
// affects the aggregate status.
type JobType int

const (
	// JobTypeUnknown represents an invalid or undefined job type.
	JobTypeUnknown JobType = iota

	// Work is a regular service job.
	Work

	// Quote is a request-for-quote job. Quote assignments use the RFQ
	// status vocabulary and are excluded from aggregation.
	Quote

	// Recall is a repeat visit for previously serviced work. Shares the
	// work vocabulary and aggregation rules with Work.
	Recall
)

func getJobTypeStrings() map[JobType]string {
	return map[JobType]string{
		JobTypeUnknown: "Unknown",
		Work:           "Work",
		Quote:          "Quote",
		Recall:         "Recall",
	}
}

// Validate checks if the JobType value is valid.
func (t JobType) Validate() error {
	if t != Work && t != Quote && t != Recall {
		return errs.NewValueIsInvalidErrorWithCause("job type is invalid",
			fmt.Errorf("%d is not a valid job type", t))
	}
	return nil
}

// String returns the human-readable name of the job type.
func (t JobType) String() string {
	if str, ok := getJobTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// JobTypeFromString parses a job type name as used on the API surface.
func JobTypeFromString(value string) (JobType, error) {
	for jobType, str := range getJobTypeStrings() {
		if str == value && jobType != JobTypeUnknown {
			return jobType, nil
		}
	}
	return JobTypeUnknown, errs.NewValueIsInvalidErrorWithCause("job type is invalid",
		fmt.Errorf("%q is not a valid job type", value))
}

// IsQuote reports whether the job type uses the RFQ vocabulary.
func (t JobType) IsQuote() bool {
	return t == Quote
}

// CountsInAggregate reports whether assignments of this job type contribute
// to the work-order-level status rollup.
func (t JobType) CountsInAggregate() bool {
	return t == Work || t == Recall
}
