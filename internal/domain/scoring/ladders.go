package scoring

// Factor maxima.
const (
	MaxDemand         = 25.0
	MaxPFZ            = 20.0
	MaxNature         = 15.0
	MaxAccessibility  = 15.0
	MaxInfrastructure = 10.0
	MaxFire           = 5.0
	MaxSaturation     = -15.0
)

// ShouldBuildThreshold is the minimum total score for which new construction
// is recommended and zones are generated.
const ShouldBuildThreshold = 55.0

// FireRadiusKm is the radius around a region centre within which human-caused
// fires count towards the fire-prevention factor.
const FireRadiusKm = 50.0

// DemandScoreFor maps a supply/demand ratio to the demand factor.
func DemandScoreFor(ratio float64) float64 {
	switch {
	case ratio < 0.6:
		return 25
	case ratio < 0.8:
		return 20
	case ratio < 1.0:
		return 15
	case ratio < 1.5:
		return 10
	default:
		return 0
	}
}

// FireScoreFor maps the number of nearby human-caused fires to the fire
// factor.  The step function rewards clusters, not isolated incidents.
func FireScoreFor(count int) float64 {
	switch {
	case count >= 15:
		return 5
	case count >= 10:
		return 3
	case count >= 5:
		return 1
	default:
		return 0
	}
}

// SaturationFor maps facility density per 1000 km² to the saturation penalty.
func SaturationFor(density float64) float64 {
	switch {
	case density > 6:
		return -15
	case density > 4:
		return -10
	case density > 3:
		return -6
	case density > 2:
		return -3
	default:
		return 0
	}
}

// Category labels.
const (
	CategoryExceptional = "ВИНЯТКОВИЙ"
	CategoryVeryHigh    = "ДУЖЕ ВИСОКИЙ"
	CategoryHigh        = "ВИСОКИЙ"
	CategoryMedium      = "СЕРЕДНІЙ"
	CategoryLow         = "НИЗЬКИЙ"
)

// CategoryFor returns the category label and recommendation for a total score.
func CategoryFor(total float64) (category, recommendation string) {
	switch {
	case total >= 85:
		return CategoryExceptional, "Найвища пріоритетність! Термінове будівництво рекомендується."
	case total >= 70:
		return CategoryVeryHigh, "Дуже привабливо для інвесторів. Будівництво настійно рекомендується."
	case total >= 55:
		return CategoryHigh, "Хороший потенціал. Рекомендується детальний аналіз локацій."
	case total >= 40:
		return CategoryMedium, "Обмежений потенціал. Можливе точкове будівництво."
	default:
		return CategoryLow, "Низький попит або перенасичений ринок. Будівництво ризиковане."
	}
}

// RiskLevelFor returns the investment risk label for a total score.
func RiskLevelFor(total float64) string {
	switch {
	case total >= 80:
		return "НИЗЬКИЙ"
	case total >= 65:
		return "ПОМІРНИЙ"
	case total >= 50:
		return "ПІДВИЩЕНИЙ"
	default:
		return "ВИСОКИЙ"
	}
}

// InvestmentScaleFor returns the suggested investment scale from the total
// score and the visit gap.
func InvestmentScaleFor(total, gap float64) string {
	switch {
	case total >= 80 && gap > 200000:
		return "ВЕЛИКИЙ (5+ об'єктів, $1M+)"
	case total >= 70 && gap > 100000:
		return "СЕРЕДНІЙ (3-5 об'єктів, $500K-1M)"
	case total >= 55 && gap > 50000:
		return "МАЛИЙ (1-2 об'єкти, $200K-500K)"
	case total >= 40:
		return "ТОЧКОВИЙ (1 унікальний об'єкт)"
	default:
		return "НЕ РЕКОМЕНДОВАНО"
	}
}

// DensityStatusFor describes facility density per 1000 km².
func DensityStatusFor(density float64) string {
	switch {
	case density > 6:
		return "Критична насиченість"
	case density > 4:
		return "Висока насиченість"
	case density > 2:
		return "Помірна насиченість"
	default:
		return "Низька конкуренція"
	}
}

// GapStatusFor labels a positive gap as a deficit and anything else as a
// surplus.
func GapStatusFor(gap float64) string {
	if gap > 0 {
		return "Дефіцит"
	}
	return "Надлишок"
}

//Personal.AI order the ending
