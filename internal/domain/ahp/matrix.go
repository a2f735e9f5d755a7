package ahp

// Criterion names of the seven scoring factors, in matrix order.
const (
	CriterionDemand         = "Попит"
	CriterionPFZ            = "ПЗФ"
	CriterionNature         = "Природа"
	CriterionTransport      = "Транспорт"
	CriterionInfrastructure = "Інфраструктура"
	CriterionFire           = "Пожежі"
	CriterionSaturation     = "Насиченість"
)

// DefaultCriteria lists the scoring factors in the order of DefaultMatrix rows.
var DefaultCriteria = []string{
	CriterionDemand,
	CriterionPFZ,
	CriterionNature,
	CriterionTransport,
	CriterionInfrastructure,
	CriterionFire,
	CriterionSaturation,
}

// DefaultMatrix returns a fresh copy of the expert comparison matrix behind
// the scorer maxima (25/20/15/15/10/5 and the −15 saturation penalty).
func DefaultMatrix() Matrix {
	return Matrix{
		//  Попит  ПЗФ    Прир   Тран   Інфр   Пож  Нас
		{1.0, 1.333, 2.0, 2.0, 3.0, 6.0, 3.0},
		{0.75, 1.0, 1.5, 1.5, 2.333, 5.0, 2.333},
		{0.5, 0.667, 1.0, 1.0, 1.75, 4.0, 1.75},
		{0.5, 0.667, 1.0, 1.0, 1.75, 4.0, 1.75},
		{0.333, 0.429, 0.571, 0.571, 1.0, 2.5, 1.167},
		{0.167, 0.2, 0.25, 0.25, 0.4, 1.0, 0.5},
		{0.333, 0.429, 0.571, 0.571, 0.857, 2.0, 1.0},
	}
}

// Justification is an ordered expert note on one pairwise judgement.
type Justification struct {
	Comparison string `json:"comparison"`
	Reason     string `json:"reason"`
}

// DefaultJustifications documents the judgements encoded in DefaultMatrix.
var DefaultJustifications = []Justification{
	{"Попит vs ПЗФ (2:1)", "Без попиту навіть найкращі ПЗФ не принесуть прибутку"},
	{"Попит vs Природа (3:1)", "Економічна доцільність важливіша за природні ресурси"},
	{"ПЗФ vs Природа (2:1)", "ПЗФ = організовані туристичні об'єкти > загальні природні ресурси"},
	{"Природа = Транспорт (1:1)", "Обидва однаково важливі для рекреації"},
	{"Природа vs Інфраструктура (3:1)", "Природу не можна створити, інфраструктуру - можна"},
	{"Пожежі (найменша вага)", "Бонусний фактор безпеки, не критичний"},
	{"Насиченість (штраф)", "Негативний фактор для уникнення перенасичення"},
}

// scoringKeys maps criteria to the keys of ScoringMaxima.
var scoringKeys = map[string]string{
	CriterionDemand:         "demand_max",
	CriterionPFZ:            "pfz_max",
	CriterionNature:         "nature_max",
	CriterionTransport:      "transport_max",
	CriterionInfrastructure: "infrastructure_max",
	CriterionFire:           "fire_max",
	CriterionSaturation:     "saturation_penalty_max",
}

//Personal.AI order the ending
