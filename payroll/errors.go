/*
errors.go - Integrity errors for the payroll mapper

PURPOSE:
  The two unrecoverable input states (missing base salary, duplicate
  deduction concept) must stop a submission before any network call.
  Messages are the Spanish strings the surrounding application surfaces
  to the user verbatim, so they are part of the contract.

USAGE:
  Callers classify with errors.Is:

    if errors.Is(err, payroll.ErrDuplicateConcept) { ... }

SEE ALSO:
  - concepts.go: uniqueDeduction raises DuplicateConceptError
  - incomes.go: MapIncomes raises ErrMissingSalary
*/
package payroll

import "errors"

// ErrMissingSalary is returned when no "Salario" concept is present.
// A payroll submission without a salary is invalid.
var ErrMissingSalary = errors.New("El salario no puede ser nulo")

// ErrDuplicateConcept is the sentinel for deduction uniqueness
// violations. Match with errors.Is; the concrete error carries the
// concept name.
var ErrDuplicateConcept = errors.New("duplicate deduction concept")

// DuplicateConceptError reports which deduction concept appeared more
// than once in a single pay period.
type DuplicateConceptError struct {
	Name string
}

func (e *DuplicateConceptError) Error() string {
	return "Solo puede haber 1 " + e.Name
}

func (e *DuplicateConceptError) Unwrap() error {
	return ErrDuplicateConcept
}

// IsIntegrityError reports whether err is one of the mapper's input
// corruption errors (as opposed to an infrastructure failure).
func IsIntegrityError(err error) bool {
	return errors.Is(err, ErrMissingSalary) || errors.Is(err, ErrDuplicateConcept)
}
