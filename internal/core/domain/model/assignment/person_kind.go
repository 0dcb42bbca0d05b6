package assignment

import (
	"fmt"

	"fieldservice/internal/pkg/errs"
)

// PersonKind classifies the assigned person. The completion guard of the
// work-status machine depends on it: technicians must traverse every
// intermediate step, suppliers may complete straight from Assigned, and
// vendors may skip Confirmed.
type PersonKind int

const (
	// KindUnknown represents an invalid or undefined person kind.
	KindUnknown PersonKind = iota

	// Technician is an in-house field technician.
	Technician

	// Supplier delivers parts or materials against the work order.
	Supplier

	// Vendor is an external service vendor.
	Vendor
)

func getPersonKindStrings() map[PersonKind]string {
	return map[PersonKind]string{
		KindUnknown: "Unknown",
		Technician:  "Technician",
		Supplier:    "Supplier",
		Vendor:      "Vendor",
	}
}

// Validate checks if the PersonKind value is valid.
func (k PersonKind) Validate() error {
	if k != Technician && k != Supplier && k != Vendor {
		return errs.NewValueIsInvalidErrorWithCause("person kind is invalid",
			fmt.Errorf("%d is not a valid person kind", k))
	}
	return nil
}

// String returns the human-readable name of the person kind.
func (k PersonKind) String() string {
	if str, ok := getPersonKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}
