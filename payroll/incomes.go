/*
incomes.go - Income half of the payroll mapping

PURPOSE:
  Extracts the ~25 income buckets from a pay period's concepts. Each
  bucket has its own presence rule:

  REQUIRED:
    basic.salary - missing or amount-less "Salario" aborts the mapping.

  OPTIONAL SCALARS (nil when absent, never zero):
    endowment, sustainmentSupport, telecommuting, withdrawalBonus,
    compensation, refund.

  ARRAY-WRAPPED, CONDITIONAL:
    overtime/surcharge variants - nil unless BOTH payment and quantity
    are present (partial data means "not worked", not an error).
    primas, incapacities, bonuses, assistances, otherConcepts,
    compensations, vouchers - nil only when every sub-field is absent;
    any one present yields a one-element array with the rest nil.

  COMPOSITE, ALWAYS PRESENT:
    transport (one-element array, fields individually optional),
    vacation (common + compensated, both always one-element arrays),
    layoffs (statutory 12% interest rate emitted unconditionally),
    licensings (maternity/paid/unpaid, each always a one-element array).

SEE ALSO:
  - concepts.go: firstIncome lookup (duplicates tolerated)
  - deductions.go: The stricter deduction side
*/
package payroll

// MapIncomes maps a pay period's concepts into the gateway's income
// schema. workedDays is the number of days covered by the period.
func MapIncomes(concepts []Concept, workedDays float64) (*Incomes, error) {
	idx := indexConcepts(concepts)

	salary := idx.firstIncome(KeySalary)
	if salary == nil || salary.Amount == nil {
		return nil, ErrMissingSalary
	}

	out := &Incomes{
		Basic: Basic{
			WorkedDays: workedDays,
			Salary:     *salary.Amount,
		},
		Transport: []Transport{{
			Assistance:      amount(idx.firstIncome(KeyTransportAid)),
			ViaticSalary:    amount(idx.firstIncome(KeyViaticSalary)),
			ViaticNonSalary: amount(idx.firstIncome(KeyViaticNonSalary)),
		}},
		DaytimeOvertime:         idx.overtime(KeyDaytimeOvertime),
		NightOvertime:           idx.overtime(KeyNightOvertime),
		NightSurcharge:          idx.overtime(KeyNightSurcharge),
		HolidayDaytimeOvertime:  idx.overtime(KeyHolidayDaytimeOvertime),
		HolidayDaytimeSurcharge: idx.overtime(KeyHolidayDaytimeSurcharge),
		HolidayNightOvertime:    idx.overtime(KeyHolidayNightOvertime),
		HolidayNightSurcharge:   idx.overtime(KeyHolidayNightSurcharge),
		Vacation: Vacation{
			Common:      []TimedPayment{idx.timed(KeyCommonVacation)},
			Compensated: []TimedPayment{idx.timed(KeyCompensatedVacation)},
		},
		Layoffs: Layoffs{
			Payment:         amount(idx.firstIncome(KeySeverance)),
			InterestPayment: amount(idx.firstIncome(KeySeveranceInterest)),
			InterestRate:    SeveranceInterestRate,
		},
		Licensings: Licensings{
			Maternity: []TimedPayment{idx.timed(KeyMaternityLeave)},
			Paid:      []TimedPayment{idx.timed(KeyPaidLeave)},
			Unpaid:    []LeaveDays{{Quantity: quantity(idx.firstIncome(KeyUnpaidLeave))}},
		},
		Commissions:        singleton(amount(idx.firstIncome(KeyCommission))),
		ThirdPartyPayments: singleton(amount(idx.firstIncome(KeyThirdParty))),
		Advances:           singleton(amount(idx.firstIncome(KeyAdvance))),
		Endowment:          amount(idx.firstIncome(KeyEndowment)),
		SustainmentSupport: amount(idx.firstIncome(KeySustainment)),
		Telecommuting:      amount(idx.firstIncome(KeyTelecommuting)),
		WithdrawalBonus:    amount(idx.firstIncome(KeyWithdrawalBonus)),
		Compensation:       amount(idx.firstIncome(KeyIndemnification)),
		Refund:             amount(idx.firstIncome(KeyRefund)),
	}

	prima := idx.firstIncome(KeyPrima)
	primaNS := idx.firstIncome(KeyPrimaNonSalary)
	if quantity(prima) != nil || amount(prima) != nil || amount(primaNS) != nil {
		out.Primas = []Primas{{
			Quantity:         quantity(prima),
			Payment:          amount(prima),
			NonSalaryPayment: amount(primaNS),
		}}
	}

	incapacity := idx.firstIncome(KeyIncapacity)
	if quantity(incapacity) != nil || amount(incapacity) != nil {
		out.Incapacities = []TimedPayment{{
			Quantity: quantity(incapacity),
			Payment:  amount(incapacity),
		}}
	}

	if s, ns := amount(idx.firstIncome(KeyBonusSalary)), amount(idx.firstIncome(KeyBonusNonSalary)); s != nil || ns != nil {
		out.Bonuses = []Bonus{{Salary: s, NonSalary: ns}}
	}
	if s, ns := amount(idx.firstIncome(KeyAssistanceSalary)), amount(idx.firstIncome(KeyAssistanceNonSalary)); s != nil || ns != nil {
		out.Assistances = []Assistance{{Salary: s, NonSalary: ns}}
	}
	if s, ns := amount(idx.firstIncome(KeyOtherSalary)), amount(idx.firstIncome(KeyOtherNonSalary)); s != nil || ns != nil {
		out.OtherConcepts = []OtherConcept{{Salary: s, NonSalary: ns}}
	}
	if o, e := amount(idx.firstIncome(KeyCompensationOrdinary)), amount(idx.firstIncome(KeyCompensationExtraordinary)); o != nil || e != nil {
		out.Compensations = []Compensation{{Ordinary: o, Extraordinary: e}}
	}

	voucher := Voucher{
		PaymentSalary:    amount(idx.firstIncome(KeyVoucherSalary)),
		PaymentNonSalary: amount(idx.firstIncome(KeyVoucherNonSalary)),
		FoodSalary:       amount(idx.firstIncome(KeyVoucherFoodSalary)),
		FoodNonSalary:    amount(idx.firstIncome(KeyVoucherFoodNonSalary)),
	}
	if voucher.PaymentSalary != nil || voucher.PaymentNonSalary != nil ||
		voucher.FoodSalary != nil || voucher.FoodNonSalary != nil {
		out.Vouchers = []Voucher{voucher}
	}

	return out, nil
}

// overtime applies the overtime presence rule: nil unless both payment
// and quantity were entered.
func (idx conceptIndex) overtime(key ConceptKey) []TimedPayment {
	c := idx.firstIncome(key)
	if amount(c) == nil || quantity(c) == nil {
		return nil
	}
	return []TimedPayment{{Quantity: c.Quantity, Payment: c.Amount}}
}

// timed extracts a quantity/payment pair for always-present buckets;
// fields stay nil when the concept is absent.
func (idx conceptIndex) timed(key ConceptKey) TimedPayment {
	c := idx.firstIncome(key)
	return TimedPayment{Quantity: quantity(c), Payment: amount(c)}
}

// singleton wraps a present value in a one-element slice, absent in nil.
func singleton(v *float64) []float64 {
	if v == nil {
		return nil
	}
	return []float64{*v}
}
