package payroll_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/villing/billing-engine/payroll"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func ptr(v float64) *float64 { return &v }

func concept(name string, amount float64) payroll.Concept {
	return payroll.Concept{KeyName: name, Amount: ptr(amount)}
}

func timedConcept(name string, amount, quantity float64) payroll.Concept {
	return payroll.Concept{KeyName: name, Amount: ptr(amount), Quantity: ptr(quantity)}
}

func baseConcepts() []payroll.Concept {
	return []payroll.Concept{concept("Salario", 1000000)}
}

// =============================================================================
// SALARY REQUIREMENT
// =============================================================================

func TestMapIncomes_NoConcepts_MissingSalaryError(t *testing.T) {
	_, err := payroll.MapIncomes(nil, 30)

	require.Error(t, err)
	assert.ErrorIs(t, err, payroll.ErrMissingSalary)
	assert.Equal(t, "El salario no puede ser nulo", err.Error())
}

func TestMapIncomes_SalaryWithoutAmount_MissingSalaryError(t *testing.T) {
	_, err := payroll.MapIncomes([]payroll.Concept{{KeyName: "Salario"}}, 30)
	assert.ErrorIs(t, err, payroll.ErrMissingSalary)
}

func TestMapIncomes_SalaryPresent_BasicPopulated(t *testing.T) {
	out, err := payroll.MapIncomes(baseConcepts(), 30)

	require.NoError(t, err)
	assert.Equal(t, 30.0, out.Basic.WorkedDays)
	assert.Equal(t, 1000000.0, out.Basic.Salary)
}

// =============================================================================
// LOOKUP NORMALIZATION
// =============================================================================

func TestMapIncomes_LookupIgnoresCaseAndDiacritics(t *testing.T) {
	out, err := payroll.MapIncomes([]payroll.Concept{
		concept("SALARIO", 2000000),
		concept("dotacion", 80000), // unaccented "Dotación"
	}, 30)

	require.NoError(t, err)
	assert.Equal(t, 2000000.0, out.Basic.Salary)
	require.NotNil(t, out.Endowment)
	assert.Equal(t, 80000.0, *out.Endowment)
}

func TestMapIncomes_DuplicateIncome_FirstMatchWins(t *testing.T) {
	// Recurring allowance rows are legitimate on the income side.
	out, err := payroll.MapIncomes([]payroll.Concept{
		concept("Salario", 1000000),
		concept("Comisión", 150000),
		concept("Comisión", 999999),
	}, 30)

	require.NoError(t, err)
	require.Len(t, out.Commissions, 1)
	assert.Equal(t, 150000.0, out.Commissions[0])
}

func TestMapIncomes_UnknownLabel_Ignored(t *testing.T) {
	out, err := payroll.MapIncomes(append(baseConcepts(),
		concept("Concepto inventado", 5000)), 30)

	require.NoError(t, err)
	assert.Nil(t, out.OtherConcepts)
}

// =============================================================================
// OPTIONAL SCALARS
// =============================================================================

func TestMapIncomes_OptionalScalars_NilWhenAbsent(t *testing.T) {
	out, err := payroll.MapIncomes(baseConcepts(), 30)
	require.NoError(t, err)

	assert.Nil(t, out.Endowment)
	assert.Nil(t, out.SustainmentSupport)
	assert.Nil(t, out.Telecommuting)
	assert.Nil(t, out.WithdrawalBonus)
	assert.Nil(t, out.Compensation)
	assert.Nil(t, out.Refund)
}

func TestMapIncomes_OptionalScalars_OmittedFromJSON(t *testing.T) {
	// The gateway distinguishes "not applicable" from "zero": absent
	// concepts must vanish from the serialized body entirely.
	out, err := payroll.MapIncomes(baseConcepts(), 30)
	require.NoError(t, err)

	body, err := json.Marshal(out)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &fields))
	assert.NotContains(t, fields, "endowment")
	assert.NotContains(t, fields, "telecommuting")
	assert.Contains(t, fields, "basic")
	assert.Contains(t, fields, "vacation")
}

// =============================================================================
// OVERTIME RULES
// =============================================================================

func TestMapIncomes_Overtime_BothFieldsPresent(t *testing.T) {
	out, err := payroll.MapIncomes(append(baseConcepts(),
		timedConcept("Hora extra diurna", 60000, 8)), 30)

	require.NoError(t, err)
	require.Len(t, out.DaytimeOvertime, 1)
	assert.Equal(t, 8.0, *out.DaytimeOvertime[0].Quantity)
	assert.Equal(t, 60000.0, *out.DaytimeOvertime[0].Payment)
}

func TestMapIncomes_Overtime_PartialData_TreatedAsNotWorked(t *testing.T) {
	// GIVEN: An overtime row with payment but no hours
	// WHEN: Mapping
	// THEN: The bucket is omitted, not an error

	out, err := payroll.MapIncomes(append(baseConcepts(),
		concept("Hora extra nocturna", 60000)), 30)

	require.NoError(t, err)
	assert.Nil(t, out.NightOvertime)
}

// =============================================================================
// COMPOSITE BUCKETS
// =============================================================================

func TestMapIncomes_Vacation_ConcreteScenario(t *testing.T) {
	out, err := payroll.MapIncomes(append(baseConcepts(),
		timedConcept("Vacaciones regulares", 300000, 15)), 30)

	require.NoError(t, err)
	require.Len(t, out.Vacation.Common, 1)
	assert.Equal(t, 15.0, *out.Vacation.Common[0].Quantity)
	assert.Equal(t, 300000.0, *out.Vacation.Common[0].Payment)

	// Compensated is always present, with nil fields when not supplied.
	require.Len(t, out.Vacation.Compensated, 1)
	assert.Nil(t, out.Vacation.Compensated[0].Quantity)
	assert.Nil(t, out.Vacation.Compensated[0].Payment)
}

func TestMapIncomes_Layoffs_StatutoryInterestRateAlwaysEmitted(t *testing.T) {
	out, err := payroll.MapIncomes(baseConcepts(), 30)
	require.NoError(t, err)

	assert.Equal(t, 12.0, out.Layoffs.InterestRate)
	assert.Nil(t, out.Layoffs.Payment)

	out, err = payroll.MapIncomes(append(baseConcepts(),
		concept("Cesantías", 500000),
		concept("Intereses de cesantías", 60000)), 30)
	require.NoError(t, err)

	assert.Equal(t, 12.0, out.Layoffs.InterestRate)
	assert.Equal(t, 500000.0, *out.Layoffs.Payment)
	assert.Equal(t, 60000.0, *out.Layoffs.InterestPayment)
}

func TestMapIncomes_Transport_AlwaysOneElement(t *testing.T) {
	out, err := payroll.MapIncomes(baseConcepts(), 30)
	require.NoError(t, err)
	require.Len(t, out.Transport, 1)
	assert.Nil(t, out.Transport[0].Assistance)

	out, err = payroll.MapIncomes(append(baseConcepts(),
		concept("Auxilio de transporte", 140606)), 30)
	require.NoError(t, err)
	require.Len(t, out.Transport, 1)
	assert.Equal(t, 140606.0, *out.Transport[0].Assistance)
}

func TestMapIncomes_Licensings_AlwaysPresent(t *testing.T) {
	out, err := payroll.MapIncomes(append(baseConcepts(),
		timedConcept("Licencia de maternidad", 900000, 18),
		payroll.Concept{KeyName: "Licencia no remunerada", Quantity: ptr(3)}), 30)

	require.NoError(t, err)
	require.Len(t, out.Licensings.Maternity, 1)
	assert.Equal(t, 18.0, *out.Licensings.Maternity[0].Quantity)
	require.Len(t, out.Licensings.Paid, 1)
	assert.Nil(t, out.Licensings.Paid[0].Payment)
	require.Len(t, out.Licensings.Unpaid, 1)
	assert.Equal(t, 3.0, *out.Licensings.Unpaid[0].Quantity)
}

func TestMapIncomes_Bonuses_AnySubFieldPresent(t *testing.T) {
	// Only the non-salary variant entered: still a one-element array,
	// with the salary side nil.
	out, err := payroll.MapIncomes(append(baseConcepts(),
		concept("Bonificación no salarial", 200000)), 30)

	require.NoError(t, err)
	require.Len(t, out.Bonuses, 1)
	assert.Nil(t, out.Bonuses[0].Salary)
	assert.Equal(t, 200000.0, *out.Bonuses[0].NonSalary)
}

func TestMapIncomes_Vouchers_AllAbsent_Omitted(t *testing.T) {
	out, err := payroll.MapIncomes(baseConcepts(), 30)
	require.NoError(t, err)
	assert.Nil(t, out.Vouchers)

	out, err = payroll.MapIncomes(append(baseConcepts(),
		concept("Bono de alimentación", 50000)), 30)
	require.NoError(t, err)
	require.Len(t, out.Vouchers, 1)
	assert.Equal(t, 50000.0, *out.Vouchers[0].FoodSalary)
	assert.Nil(t, out.Vouchers[0].PaymentSalary)
}

func TestMapIncomes_Primas(t *testing.T) {
	out, err := payroll.MapIncomes(append(baseConcepts(),
		timedConcept("Prima", 500000, 15),
		concept("Prima no salarial", 100000)), 30)

	require.NoError(t, err)
	require.Len(t, out.Primas, 1)
	assert.Equal(t, 15.0, *out.Primas[0].Quantity)
	assert.Equal(t, 500000.0, *out.Primas[0].Payment)
	assert.Equal(t, 100000.0, *out.Primas[0].NonSalaryPayment)
}

// =============================================================================
// DEDUCTIONS
// =============================================================================

func TestMapDeductions_Empty_StatutoryRatesStillEmitted(t *testing.T) {
	out, err := payroll.MapDeductions(nil)

	require.NoError(t, err)
	require.NotNil(t, out.Health.Percentage)
	assert.Equal(t, 25.0, *out.Health.Percentage)
	assert.Nil(t, out.Health.Deduction)
	require.NotNil(t, out.Pension.Percentage)
	assert.Equal(t, 25.0, *out.Pension.Percentage)
	assert.Nil(t, out.Pension.Deduction)
}

func TestMapDeductions_HealthAndPensionAmounts(t *testing.T) {
	out, err := payroll.MapDeductions([]payroll.Concept{
		concept("Salud", 40000),
		concept("Pensión", 40000),
	})

	require.NoError(t, err)
	assert.Equal(t, 40000.0, *out.Health.Deduction)
	assert.Equal(t, 40000.0, *out.Pension.Deduction)
}

func TestMapDeductions_DuplicateConcept_Rejected(t *testing.T) {
	// GIVEN: Two union dues rows in the same pay period
	// WHEN: Mapping deductions
	// THEN: Hard error with the exact user-facing message

	_, err := payroll.MapDeductions([]payroll.Concept{
		concept("Sindicato", 100),
		concept("Sindicato", 200),
	})

	require.Error(t, err)
	assert.Equal(t, "Solo puede haber 1 Sindicato", err.Error())
	assert.ErrorIs(t, err, payroll.ErrDuplicateConcept)

	var dup *payroll.DuplicateConceptError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Sindicato", dup.Name)
}

func TestMapDeductions_DuplicateDetectionIgnoresCase(t *testing.T) {
	_, err := payroll.MapDeductions([]payroll.Concept{
		concept("Libranza", 50000),
		concept("LIBRANZA", 70000),
	})

	require.Error(t, err)
	assert.Equal(t, "Solo puede haber 1 Libranza", err.Error())
}

func TestMapDeductions_Sanctions_EitherVariant(t *testing.T) {
	out, err := payroll.MapDeductions([]payroll.Concept{
		concept("Sanción privada", 30000),
	})

	require.NoError(t, err)
	require.Len(t, out.Sanctions, 1)
	assert.Nil(t, out.Sanctions[0].PaymentPublic)
	assert.Equal(t, 30000.0, *out.Sanctions[0].PaymentPrivate)
}

func TestMapDeductions_Libranza(t *testing.T) {
	out, err := payroll.MapDeductions([]payroll.Concept{
		concept("Libranza", 120000),
	})

	require.NoError(t, err)
	require.Len(t, out.Libranzas, 1)
	assert.Equal(t, "Libranza", out.Libranzas[0].Description)
	assert.Equal(t, 120000.0, *out.Libranzas[0].Deduction)
}

func TestMapDeductions_OptionalScalars(t *testing.T) {
	out, err := payroll.MapDeductions([]payroll.Concept{
		concept("Retención en la fuente", 95000),
		concept("AFC", 200000),
	})

	require.NoError(t, err)
	assert.Equal(t, 95000.0, *out.WithholdingSource)
	assert.Equal(t, 200000.0, *out.AFC)
	assert.Nil(t, out.Cooperative)
	assert.Nil(t, out.TaxLien)
	assert.Nil(t, out.Education)
	assert.Nil(t, out.Debt)
}

// =============================================================================
// COMBINED MAPPING
// =============================================================================

func TestMapAll_PropagatesIntegrityErrors(t *testing.T) {
	_, err := payroll.MapAll(nil, nil, 30)
	assert.ErrorIs(t, err, payroll.ErrMissingSalary)

	_, err = payroll.MapAll(baseConcepts(), []payroll.Concept{
		concept("Deuda", 10),
		concept("Deuda", 20),
	}, 30)
	assert.ErrorIs(t, err, payroll.ErrDuplicateConcept)
	assert.True(t, payroll.IsIntegrityError(err))
}

func TestMapAll_FullPeriod(t *testing.T) {
	body, err := payroll.MapAll(
		[]payroll.Concept{
			concept("Salario", 1300000),
			concept("Auxilio de transporte", 140606),
			timedConcept("Hora extra diurna", 45000, 6),
		},
		[]payroll.Concept{
			concept("Salud", 52000),
			concept("Pensión", 52000),
		},
		30,
	)

	require.NoError(t, err)
	assert.Equal(t, 1300000.0, body.Incomes.Basic.Salary)
	assert.Equal(t, 52000.0, *body.Deductions.Health.Deduction)

	// The body must serialize cleanly; it is POSTed as-is.
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))
}

// =============================================================================
// CATALOG
// =============================================================================

func TestResolve_KnownAndUnknown(t *testing.T) {
	key, ok := payroll.Resolve("  cesantias ")
	assert.True(t, ok)
	assert.Equal(t, payroll.KeySeverance, key)

	_, ok = payroll.Resolve("no existe")
	assert.False(t, ok)
}

func TestConceptsAreReadOnly(t *testing.T) {
	// Mapping must not mutate its input.
	concepts := append(baseConcepts(), concept("Dotación", 80000))
	before := *concepts[1].Amount

	_, err := payroll.MapIncomes(concepts, 30)
	require.NoError(t, err)
	assert.Equal(t, before, *concepts[1].Amount)

	if errors.Is(err, payroll.ErrMissingSalary) {
		t.Fatal("unexpected integrity error")
	}
}
