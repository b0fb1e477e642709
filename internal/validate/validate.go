// Package validate checks candidate entries against the format and business
// rules a record must satisfy before it is stored.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Tiliavir/spotsecure/internal/model"
	"github.com/Tiliavir/spotsecure/internal/timecalc"
)

// Kind identifies which rule rejected a candidate.
type Kind int

const (
	MissingField Kind = iota + 1
	InvalidLicensePlateFormat
	InvalidTimeOrder
	InvalidMobileFormat
	DuplicateLicensePlate
)

func (k Kind) String() string {
	switch k {
	case MissingField:
		return "MissingField"
	case InvalidLicensePlateFormat:
		return "InvalidLicensePlateFormat"
	case InvalidTimeOrder:
		return "InvalidTimeOrder"
	case InvalidMobileFormat:
		return "InvalidMobileFormat"
	case DuplicateLicensePlate:
		return "DuplicateLicensePlate"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is returned for the first rule a candidate violates.
type Error struct {
	Kind  Kind
	Field string
}

func (e *Error) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("all fields must be filled: %s is missing", e.Field)
	case InvalidLicensePlateFormat:
		return "license plate must be in format NN-NN-LL, NN-LL-NN or LL-NN-NN"
	case InvalidTimeOrder:
		return "exit time must be after entry time"
	case InvalidMobileFormat:
		return "mobile number must be 10 digits"
	case DuplicateLicensePlate:
		return "a vehicle with this license plate already exists"
	}
	return e.Kind.String()
}

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is regardless of Field.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrMissingField              = &Error{Kind: MissingField}
	ErrInvalidLicensePlateFormat = &Error{Kind: InvalidLicensePlateFormat}
	ErrInvalidTimeOrder          = &Error{Kind: InvalidTimeOrder}
	ErrInvalidMobileFormat       = &Error{Kind: InvalidMobileFormat}
	ErrDuplicateLicensePlate     = &Error{Kind: DuplicateLicensePlate}
)

// plateRe accepts LL-NN-NN, NN-LL-NN and NN-NN-LL.
var plateRe = regexp.MustCompile(`^(?:[A-Z]{2}-[0-9]{2}-[0-9]{2}|[0-9]{2}-[A-Z]{2}-[0-9]{2}|[0-9]{2}-[0-9]{2}-[A-Z]{2})$`)

// Validator runs the entry rules in a fixed order.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the license plate rule registered.
func New() *Validator {
	v := validator.New()
	if err := v.RegisterValidation("licenseplate", func(fl validator.FieldLevel) bool {
		return plateRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return &Validator{v: v}
}

// Validate checks candidate against the rules and the existing records.
// editingID excludes the record being edited from the uniqueness check; pass
// "" when creating.
func (v *Validator) Validate(candidate model.Entry, existing []model.Entry, editingID string) error {
	required := []struct {
		field string
		value string
	}{
		{"owner", candidate.Owner},
		{"car", candidate.Car},
		{"licensePlate", candidate.LicensePlate},
		{"entryTime", candidate.EntryTime},
		{"exitTime", candidate.ExitTime},
		{"date", candidate.Date},
	}
	for _, r := range required {
		if err := v.v.Var(strings.TrimSpace(r.value), "required"); err != nil {
			return &Error{Kind: MissingField, Field: r.field}
		}
	}

	if err := v.v.Var(candidate.LicensePlate, "licenseplate"); err != nil {
		return &Error{Kind: InvalidLicensePlateFormat, Field: "licensePlate"}
	}

	// Unparseable times cannot be ordered, so they fail the same rule.
	span, err := timecalc.Span(candidate.Date, candidate.EntryTime, candidate.ExitTime)
	if err != nil || span <= 0 {
		return &Error{Kind: InvalidTimeOrder, Field: "exitTime"}
	}

	if err := v.v.Var(candidate.MobileNumber, "omitempty,len=10,number"); err != nil {
		return &Error{Kind: InvalidMobileFormat, Field: "mobileNumber"}
	}

	for _, e := range existing {
		if !e.Active() || (editingID != "" && e.ID == editingID) {
			continue
		}
		if e.LicensePlate == candidate.LicensePlate {
			return &Error{Kind: DuplicateLicensePlate, Field: "licensePlate"}
		}
	}
	return nil
}
