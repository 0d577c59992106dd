/*
Package payroll maps free-form payroll concepts into the rigid nested
structure required by the electronic payroll submission gateway.

PURPOSE:
  Organizations enter pay-period line items as named concepts ("Salario",
  "Auxilio de transporte", "Libranza", ...). The gateway wants a fixed
  schema with ~25 income buckets and ~20 deduction buckets, each with its
  own presence and cardinality rules. This package is that translation,
  and nothing else: no I/O, no math beyond copying values and emitting
  statutory constants.

KEY CONCEPTS IN THIS FILE (types.go):
  - Concept: one named income or deduction row (amount/quantity optional)
  - Incomes / Deductions: the gateway-shaped output
  - Optional fields are pointers with omitempty: the schema distinguishes
    "value is zero" from "concept not applicable this period"

DESIGN PRINCIPLES:
  1. Purity: read-only inputs, fresh outputs, no side effects
  2. Absent != zero: missing concepts become nil, never 0
  3. Fail before the network: integrity violations (missing salary,
     duplicate deduction) are synchronous errors raised before any
     submission is attempted

SEE ALSO:
  - concepts.go: The label catalog and lookup policies
  - incomes.go / deductions.go: The mappers
*/
package payroll

// =============================================================================
// INPUT
// =============================================================================

// Concept is one user-entered payroll row. KeyName is a Spanish label
// from the fixed catalog, matched case- and diacritic-insensitively.
// Amount and Quantity are optional; meaning of Quantity depends on the
// concept (days, hours, a percentage).
type Concept struct {
	KeyName  string   `json:"keyName"`
	Amount   *float64 `json:"amount,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
}

// =============================================================================
// STATUTORY CONSTANTS
// =============================================================================

const (
	// SeveranceInterestRate is the statutory annual interest on
	// severance (cesantías) in Colombia.
	SeveranceInterestRate = 12.0

	// StatutoryHealthRate and StatutoryPensionRate are the fixed
	// percentages reported on the health and pension deduction buckets.
	StatutoryHealthRate  = 25.0
	StatutoryPensionRate = 25.0
)

// =============================================================================
// INCOME OUTPUT
// =============================================================================

// Incomes is the income half of the gateway schema. Field names and
// nesting mirror the external contract exactly; shape drift here is
// contract-breaking.
type Incomes struct {
	Basic              Basic            `json:"basic"`
	Transport          []Transport      `json:"transport"`
	DaytimeOvertime    []TimedPayment   `json:"daytimeOvertime,omitempty"`
	NightOvertime      []TimedPayment   `json:"nightOvertime,omitempty"`
	NightSurcharge     []TimedPayment   `json:"nightSurcharge,omitempty"`
	HolidayDaytimeOvertime  []TimedPayment `json:"holidayDaytimeOvertime,omitempty"`
	HolidayDaytimeSurcharge []TimedPayment `json:"holidayDaytimeSurcharge,omitempty"`
	HolidayNightOvertime    []TimedPayment `json:"holidayNightOvertime,omitempty"`
	HolidayNightSurcharge   []TimedPayment `json:"holidayNightSurcharge,omitempty"`
	Vacation           Vacation         `json:"vacation"`
	Primas             []Primas         `json:"primas,omitempty"`
	Layoffs            Layoffs          `json:"layoffs"`
	Incapacities       []TimedPayment   `json:"incapacities,omitempty"`
	Licensings         Licensings       `json:"licensings"`
	Bonuses            []Bonus          `json:"bonuses,omitempty"`
	Assistances        []Assistance     `json:"assistances,omitempty"`
	OtherConcepts      []OtherConcept   `json:"otherConcepts,omitempty"`
	Compensations      []Compensation   `json:"compensations,omitempty"`
	Vouchers           []Voucher        `json:"vouchers,omitempty"`
	Commissions        []float64        `json:"commissions,omitempty"`
	ThirdPartyPayments []float64        `json:"thirdPartyPayments,omitempty"`
	Advances           []float64        `json:"advances,omitempty"`
	Endowment          *float64         `json:"endowment,omitempty"`
	SustainmentSupport *float64         `json:"sustainmentSupport,omitempty"`
	Telecommuting      *float64         `json:"telecommuting,omitempty"`
	WithdrawalBonus    *float64         `json:"withdrawalBonus,omitempty"`
	Compensation       *float64         `json:"compensation,omitempty"`
	Refund             *float64         `json:"refund,omitempty"`
}

// Basic carries the worked days and the base salary. Salary is the one
// concept whose absence aborts the mapping.
type Basic struct {
	WorkedDays float64 `json:"workedDays"`
	Salary     float64 `json:"salary"`
}

// Transport groups the transport-related allowances. Always emitted as
// a one-element array; each field is individually optional.
type Transport struct {
	Assistance      *float64 `json:"assistance,omitempty"`
	ViaticSalary    *float64 `json:"viaticSalary,omitempty"`
	ViaticNonSalary *float64 `json:"viaticNonSalary,omitempty"`
}

// TimedPayment is a quantity/payment pair used by overtime, surcharge
// and incapacity buckets.
type TimedPayment struct {
	Quantity *float64 `json:"quantity,omitempty"`
	Payment  *float64 `json:"payment,omitempty"`
}

// Vacation splits into common (taken) and compensated (paid out)
// vacations. Both arrays are always present, even when empty of values.
type Vacation struct {
	Common      []TimedPayment `json:"common"`
	Compensated []TimedPayment `json:"compensated"`
}

// Primas is the service premium: salary payment plus a non-salary part.
type Primas struct {
	Quantity         *float64 `json:"quantity,omitempty"`
	Payment          *float64 `json:"payment,omitempty"`
	NonSalaryPayment *float64 `json:"nonSalaryPayment,omitempty"`
}

// Layoffs carries severance and its statutory 12% interest. Always
// present; the rate is emitted even when no severance was paid.
type Layoffs struct {
	Payment         *float64 `json:"payment,omitempty"`
	InterestPayment *float64 `json:"interestPayment,omitempty"`
	InterestRate    float64  `json:"interestRate"`
}

// Licensings groups the three leave categories. Each is always a
// one-element array.
type Licensings struct {
	Maternity []TimedPayment `json:"maternity"`
	Paid      []TimedPayment `json:"paid"`
	Unpaid    []LeaveDays    `json:"unpaid"`
}

// LeaveDays is an unpaid leave entry: days only, no payment.
type LeaveDays struct {
	Quantity *float64 `json:"quantity,omitempty"`
}

// Bonus is a salary/non-salary bonus pair.
type Bonus struct {
	Salary    *float64 `json:"salary,omitempty"`
	NonSalary *float64 `json:"nonSalary,omitempty"`
}

// Assistance is a salary/non-salary assistance pair.
type Assistance struct {
	Salary    *float64 `json:"salary,omitempty"`
	NonSalary *float64 `json:"nonSalary,omitempty"`
}

// OtherConcept is the catch-all salary/non-salary pair.
type OtherConcept struct {
	Salary    *float64 `json:"salary,omitempty"`
	NonSalary *float64 `json:"nonSalary,omitempty"`
}

// Compensation is an ordinary/extraordinary compensation pair.
type Compensation struct {
	Ordinary      *float64 `json:"ordinary,omitempty"`
	Extraordinary *float64 `json:"extraordinary,omitempty"`
}

// Voucher groups the EPCTV-style vouchers: general and food, each with
// a salary and a non-salary variant.
type Voucher struct {
	PaymentSalary    *float64 `json:"paymentSalary,omitempty"`
	PaymentNonSalary *float64 `json:"paymentNonSalary,omitempty"`
	FoodSalary       *float64 `json:"foodSalary,omitempty"`
	FoodNonSalary    *float64 `json:"foodNonSalary,omitempty"`
}

// =============================================================================
// DEDUCTION OUTPUT
// =============================================================================

// Deductions is the deduction half of the gateway schema.
type Deductions struct {
	Health              RatedDeduction `json:"health"`
	Pension             RatedDeduction `json:"pension"`
	PensionSecurityFund []RatedDeduction `json:"pensionSecurityFund,omitempty"`
	TradeUnions         []RatedDeduction `json:"tradeUnions,omitempty"`
	Sanctions           []Sanction     `json:"sanctions,omitempty"`
	Libranzas           []Libranza     `json:"libranzas,omitempty"`
	ThirdPartyPayments  []float64      `json:"thirdPartyPayments,omitempty"`
	Advances            []float64      `json:"advances,omitempty"`
	OtherDeductions     []float64      `json:"otherDeductions,omitempty"`
	VoluntaryPension    *float64       `json:"voluntaryPension,omitempty"`
	WithholdingSource   *float64       `json:"withholdingSource,omitempty"`
	AFC                 *float64       `json:"afc,omitempty"`
	Cooperative         *float64       `json:"cooperative,omitempty"`
	TaxLien             *float64       `json:"taxLien,omitempty"`
	ComplementaryPlans  *float64       `json:"complementaryPlans,omitempty"`
	Education           *float64       `json:"education,omitempty"`
	Refund              *float64       `json:"refund,omitempty"`
	Debt                *float64       `json:"debt,omitempty"`
}

// RatedDeduction is a percentage/amount pair. For health and pension the
// percentage is the statutory constant; for funds and unions it comes
// from the concept's quantity field.
type RatedDeduction struct {
	Percentage *float64 `json:"percentage,omitempty"`
	Deduction  *float64 `json:"deduction,omitempty"`
}

// Sanction splits public and private sanctions.
type Sanction struct {
	PaymentPublic  *float64 `json:"paymentPublic,omitempty"`
	PaymentPrivate *float64 `json:"paymentPrivate,omitempty"`
}

// Libranza is a payroll-deduction loan installment.
type Libranza struct {
	Description string   `json:"description"`
	Deduction   *float64 `json:"deduction,omitempty"`
}

// =============================================================================
// COMBINED OUTPUT
// =============================================================================

// Payroll is the full mapped submission body.
type Payroll struct {
	Incomes    Incomes    `json:"incomes"`
	Deductions Deductions `json:"deductions"`
}
