/*
concepts.go - Concept catalog, label normalization and lookup policies

PURPOSE:
  The persistence layer stores concept categories as user-entered Spanish
  labels. This file closes that open world: every known label resolves
  through a single normalization table to a typed ConceptKey, and the two
  lookup policies live here:

  INCOME LOOKUP (firstIncome):
    Duplicates tolerated, first match wins. Recurring allowance rows are
    legitimate on the income side.

  DEDUCTION LOOKUP (uniqueDeduction):
    Duplicates are a hard error ("Solo puede haber 1 {name}"). The
    external schema expects each deduction concept at most once per pay
    period.

  The asymmetry is a business rule, not an accident; keep them as two
  functions, never one function with a flag.

NORMALIZATION:
  Case- and diacritic-insensitive: "Pensión", "pension" and "PENSION"
  all resolve to the same key. Folding uses NFD decomposition with
  combining marks stripped, done once per mapping call.

SEE ALSO:
  - incomes.go / deductions.go: Consumers of the lookups
  - errors.go: DuplicateConceptError
*/
package payroll

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ConceptKey identifies one catalog entry.
type ConceptKey string

// Income concept keys.
const (
	KeySalary             ConceptKey = "salary"
	KeyTransportAid       ConceptKey = "transport_aid"
	KeyViaticSalary       ConceptKey = "viatic_salary"
	KeyViaticNonSalary    ConceptKey = "viatic_non_salary"
	KeyDaytimeOvertime    ConceptKey = "daytime_overtime"
	KeyNightOvertime      ConceptKey = "night_overtime"
	KeyNightSurcharge     ConceptKey = "night_surcharge"
	KeyHolidayDaytimeOvertime  ConceptKey = "holiday_daytime_overtime"
	KeyHolidayDaytimeSurcharge ConceptKey = "holiday_daytime_surcharge"
	KeyHolidayNightOvertime    ConceptKey = "holiday_night_overtime"
	KeyHolidayNightSurcharge   ConceptKey = "holiday_night_surcharge"
	KeyCommonVacation     ConceptKey = "common_vacation"
	KeyCompensatedVacation ConceptKey = "compensated_vacation"
	KeyPrima              ConceptKey = "prima"
	KeyPrimaNonSalary     ConceptKey = "prima_non_salary"
	KeySeverance          ConceptKey = "severance"
	KeySeveranceInterest  ConceptKey = "severance_interest"
	KeyIncapacity         ConceptKey = "incapacity"
	KeyMaternityLeave     ConceptKey = "maternity_leave"
	KeyPaidLeave          ConceptKey = "paid_leave"
	KeyUnpaidLeave        ConceptKey = "unpaid_leave"
	KeyBonusSalary        ConceptKey = "bonus_salary"
	KeyBonusNonSalary     ConceptKey = "bonus_non_salary"
	KeyAssistanceSalary   ConceptKey = "assistance_salary"
	KeyAssistanceNonSalary ConceptKey = "assistance_non_salary"
	KeyOtherSalary        ConceptKey = "other_salary"
	KeyOtherNonSalary     ConceptKey = "other_non_salary"
	KeyCompensationOrdinary      ConceptKey = "compensation_ordinary"
	KeyCompensationExtraordinary ConceptKey = "compensation_extraordinary"
	KeyVoucherSalary      ConceptKey = "voucher_salary"
	KeyVoucherNonSalary   ConceptKey = "voucher_non_salary"
	KeyVoucherFoodSalary  ConceptKey = "voucher_food_salary"
	KeyVoucherFoodNonSalary ConceptKey = "voucher_food_non_salary"
	KeyCommission         ConceptKey = "commission"
	KeyThirdParty         ConceptKey = "third_party"
	KeyAdvance            ConceptKey = "advance"
	KeyEndowment          ConceptKey = "endowment"
	KeySustainment        ConceptKey = "sustainment"
	KeyTelecommuting      ConceptKey = "telecommuting"
	KeyWithdrawalBonus    ConceptKey = "withdrawal_bonus"
	KeyIndemnification    ConceptKey = "indemnification"
	KeyRefund             ConceptKey = "refund"
)

// Deduction concept keys.
const (
	KeyHealth            ConceptKey = "health"
	KeyPension           ConceptKey = "pension"
	KeyPensionFund       ConceptKey = "pension_fund"
	KeyTradeUnion        ConceptKey = "trade_union"
	KeyPublicSanction    ConceptKey = "public_sanction"
	KeyPrivateSanction   ConceptKey = "private_sanction"
	KeyLibranza          ConceptKey = "libranza"
	KeyOtherDeduction    ConceptKey = "other_deduction"
	KeyVoluntaryPension  ConceptKey = "voluntary_pension"
	KeyWithholding       ConceptKey = "withholding"
	KeyAFC               ConceptKey = "afc"
	KeyCooperative       ConceptKey = "cooperative"
	KeyTaxLien           ConceptKey = "tax_lien"
	KeyComplementaryPlan ConceptKey = "complementary_plan"
	KeyEducation         ConceptKey = "education"
	KeyDebt              ConceptKey = "debt"
)

// catalog maps canonical Spanish labels to their keys. Lookup goes
// through normalize, so the accents here are documentation as much as
// data.
var catalog = map[string]ConceptKey{
	"Salario":                               KeySalary,
	"Auxilio de transporte":                 KeyTransportAid,
	"Viáticos salariales":                   KeyViaticSalary,
	"Viáticos no salariales":                KeyViaticNonSalary,
	"Hora extra diurna":                     KeyDaytimeOvertime,
	"Hora extra nocturna":                   KeyNightOvertime,
	"Recargo nocturno":                      KeyNightSurcharge,
	"Hora extra diurna dominical y festiva": KeyHolidayDaytimeOvertime,
	"Recargo diurno dominical y festivo":    KeyHolidayDaytimeSurcharge,
	"Hora extra nocturna dominical y festiva": KeyHolidayNightOvertime,
	"Recargo nocturno dominical y festivo":  KeyHolidayNightSurcharge,
	"Vacaciones regulares":                  KeyCommonVacation,
	"Vacaciones compensadas":                KeyCompensatedVacation,
	"Prima":                                 KeyPrima,
	"Prima no salarial":                     KeyPrimaNonSalary,
	"Cesantías":                             KeySeverance,
	"Intereses de cesantías":                KeySeveranceInterest,
	"Incapacidad":                           KeyIncapacity,
	"Licencia de maternidad":                KeyMaternityLeave,
	"Licencia remunerada":                   KeyPaidLeave,
	"Licencia no remunerada":                KeyUnpaidLeave,
	"Bonificación salarial":                 KeyBonusSalary,
	"Bonificación no salarial":              KeyBonusNonSalary,
	"Auxilio salarial":                      KeyAssistanceSalary,
	"Auxilio no salarial":                   KeyAssistanceNonSalary,
	"Otro concepto salarial":                KeyOtherSalary,
	"Otro concepto no salarial":             KeyOtherNonSalary,
	"Compensación ordinaria":                KeyCompensationOrdinary,
	"Compensación extraordinaria":           KeyCompensationExtraordinary,
	"Bono salarial":                         KeyVoucherSalary,
	"Bono no salarial":                      KeyVoucherNonSalary,
	"Bono de alimentación":                  KeyVoucherFoodSalary,
	"Bono de alimentación no salarial":      KeyVoucherFoodNonSalary,
	"Comisión":                              KeyCommission,
	"Pago a terceros":                       KeyThirdParty,
	"Anticipo":                              KeyAdvance,
	"Dotación":                              KeyEndowment,
	"Apoyo de sostenimiento":                KeySustainment,
	"Teletrabajo":                           KeyTelecommuting,
	"Bonificación de retiro":                KeyWithdrawalBonus,
	"Indemnización":                         KeyIndemnification,
	"Reintegro":                             KeyRefund,

	"Salud":                        KeyHealth,
	"Pensión":                      KeyPension,
	"Fondo de solidaridad pensional": KeyPensionFund,
	"Sindicato":                    KeyTradeUnion,
	"Sanción pública":              KeyPublicSanction,
	"Sanción privada":              KeyPrivateSanction,
	"Libranza":                     KeyLibranza,
	"Otra deducción":               KeyOtherDeduction,
	"Pensión voluntaria":           KeyVoluntaryPension,
	"Retención en la fuente":       KeyWithholding,
	"AFC":                          KeyAFC,
	"Cooperativa":                  KeyCooperative,
	"Embargo fiscal":               KeyTaxLien,
	"Plan complementario de salud": KeyComplementaryPlan,
	"Educación":                    KeyEducation,
	"Deuda":                        KeyDebt,
}

// canonicalLabels is the reverse index used to build user-facing error
// messages from a resolved key.
var canonicalLabels = func() map[ConceptKey]string {
	labels := make(map[ConceptKey]string, len(catalog))
	for label, key := range catalog {
		labels[key] = label
	}
	return labels
}()

// normalizedCatalog is built once at init; lookups at mapping time only
// normalize the incoming label.
var normalizedCatalog = func() map[string]ConceptKey {
	m := make(map[string]ConceptKey, len(catalog))
	for label, key := range catalog {
		m[normalize(label)] = key
	}
	return m
}()

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// normalize folds a label for catalog comparison: trim, lowercase,
// strip diacritics.
func normalize(label string) string {
	folded, _, err := transform.String(diacriticStripper, label)
	if err != nil {
		folded = label
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Resolve maps a free-text label to its catalog key. Unknown labels are
// not an error; the caller decides whether an unmatched concept matters.
func Resolve(label string) (ConceptKey, bool) {
	key, ok := normalizedCatalog[normalize(label)]
	return key, ok
}

// CanonicalLabel returns the catalog spelling for a key, for messages.
func CanonicalLabel(key ConceptKey) string {
	return canonicalLabels[key]
}

// =============================================================================
// LOOKUP POLICIES
// =============================================================================

// conceptIndex is the resolved view of one mapping call's input.
type conceptIndex map[ConceptKey][]Concept

func indexConcepts(concepts []Concept) conceptIndex {
	idx := make(conceptIndex)
	for _, c := range concepts {
		key, ok := Resolve(c.KeyName)
		if !ok {
			continue
		}
		idx[key] = append(idx[key], c)
	}
	return idx
}

// firstIncome returns the first concept for key, or nil. Duplicates are
// tolerated on the income side; first match wins.
func (idx conceptIndex) firstIncome(key ConceptKey) *Concept {
	matches := idx[key]
	if len(matches) == 0 {
		return nil
	}
	c := matches[0]
	return &c
}

// uniqueDeduction returns the concept for key, or nil when absent, or a
// DuplicateConceptError when the key appears more than once.
func (idx conceptIndex) uniqueDeduction(key ConceptKey) (*Concept, error) {
	matches := idx[key]
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		c := matches[0]
		return &c, nil
	default:
		return nil, &DuplicateConceptError{Name: CanonicalLabel(key)}
	}
}

// amount and quantity are nil-safe accessors for optional concepts.
func amount(c *Concept) *float64 {
	if c == nil {
		return nil
	}
	return c.Amount
}

func quantity(c *Concept) *float64 {
	if c == nil {
		return nil
	}
	return c.Quantity
}
