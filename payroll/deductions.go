/*
deductions.go - Deduction half of the payroll mapping

PURPOSE:
  Extracts the ~20 deduction buckets. Structurally parallel to the
  income side with one stricter rule: every deduction concept may appear
  AT MOST ONCE per pay period. A duplicate name is unrecoverable input
  corruption and aborts the mapping with "Solo puede haber 1 {name}".

  Health and pension always report the statutory 25% percentage; the
  deducted amount stays nil when the concept is absent so the schema's
  "not applicable" reading is preserved.

SEE ALSO:
  - concepts.go: uniqueDeduction lookup
  - errors.go: DuplicateConceptError
*/
package payroll

// MapDeductions maps a pay period's deduction concepts into the gateway
// schema. The first duplicate concept encountered aborts the mapping.
func MapDeductions(concepts []Concept) (*Deductions, error) {
	idx := indexConcepts(concepts)

	// Resolve every bucket through the duplicate-intolerant lookup
	// before assembling the output, so a corrupt period never produces
	// a partially mapped result.
	lookup := map[ConceptKey]*Concept{}
	for _, key := range []ConceptKey{
		KeyHealth, KeyPension, KeyPensionFund, KeyTradeUnion,
		KeyPublicSanction, KeyPrivateSanction, KeyLibranza,
		KeyThirdParty, KeyAdvance, KeyOtherDeduction,
		KeyVoluntaryPension, KeyWithholding, KeyAFC, KeyCooperative,
		KeyTaxLien, KeyComplementaryPlan, KeyEducation, KeyRefund,
		KeyDebt,
	} {
		c, err := idx.uniqueDeduction(key)
		if err != nil {
			return nil, err
		}
		lookup[key] = c
	}

	healthRate := StatutoryHealthRate
	pensionRate := StatutoryPensionRate

	out := &Deductions{
		Health: RatedDeduction{
			Percentage: &healthRate,
			Deduction:  amount(lookup[KeyHealth]),
		},
		Pension: RatedDeduction{
			Percentage: &pensionRate,
			Deduction:  amount(lookup[KeyPension]),
		},
		ThirdPartyPayments: singleton(amount(lookup[KeyThirdParty])),
		Advances:           singleton(amount(lookup[KeyAdvance])),
		OtherDeductions:    singleton(amount(lookup[KeyOtherDeduction])),
		VoluntaryPension:   amount(lookup[KeyVoluntaryPension]),
		WithholdingSource:  amount(lookup[KeyWithholding]),
		AFC:                amount(lookup[KeyAFC]),
		Cooperative:        amount(lookup[KeyCooperative]),
		TaxLien:            amount(lookup[KeyTaxLien]),
		ComplementaryPlans: amount(lookup[KeyComplementaryPlan]),
		Education:          amount(lookup[KeyEducation]),
		Refund:             amount(lookup[KeyRefund]),
		Debt:               amount(lookup[KeyDebt]),
	}

	if fund := lookup[KeyPensionFund]; fund != nil {
		out.PensionSecurityFund = []RatedDeduction{{
			Percentage: fund.Quantity, // rate entered as the quantity
			Deduction:  fund.Amount,
		}}
	}

	if union := lookup[KeyTradeUnion]; union != nil {
		out.TradeUnions = []RatedDeduction{{
			Percentage: union.Quantity,
			Deduction:  union.Amount,
		}}
	}

	pub := lookup[KeyPublicSanction]
	priv := lookup[KeyPrivateSanction]
	if pub != nil || priv != nil {
		out.Sanctions = []Sanction{{
			PaymentPublic:  amount(pub),
			PaymentPrivate: amount(priv),
		}}
	}

	if libranza := lookup[KeyLibranza]; libranza != nil {
		out.Libranzas = []Libranza{{
			Description: CanonicalLabel(KeyLibranza),
			Deduction:   libranza.Amount,
		}}
	}

	return out, nil
}

// MapAll maps both halves of a pay period in one call, the shape the
// submission client consumes.
func MapAll(incomes, deductions []Concept, workedDays float64) (*Payroll, error) {
	mappedIncomes, err := MapIncomes(incomes, workedDays)
	if err != nil {
		return nil, err
	}
	mappedDeductions, err := MapDeductions(deductions)
	if err != nil {
		return nil, err
	}
	return &Payroll{
		Incomes:    *mappedIncomes,
		Deductions: *mappedDeductions,
	}, nil
}
