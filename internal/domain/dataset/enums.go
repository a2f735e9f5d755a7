package dataset

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/turtacn/recreation-potential/internal/domain/geo"
)

// ─────────────────────────────────────────────────────────────────────────────
// ElectricityReliability
// ─────────────────────────────────────────────────────────────────────────────

// ElectricityReliability is the closed set of grid reliability grades.
type ElectricityReliability int

const (
	ReliabilityOther ElectricityReliability = iota
	ReliabilityMedium
	ReliabilityHigh
)

var reliabilityLabels = map[ElectricityReliability]string{
	ReliabilityHigh:   "висока",
	ReliabilityMedium: "середня",
	ReliabilityOther:  "інша",
}

// reliabilityBonus is the infrastructure sub-score contribution per grade.
var reliabilityBonus = map[ElectricityReliability]float64{
	ReliabilityHigh:   1.0,
	ReliabilityMedium: 0.5,
	ReliabilityOther:  0,
}

// ParseElectricityReliability maps a dataset label to a grade.  Unrecognised
// labels are ReliabilityOther.
func ParseElectricityReliability(s string) ElectricityReliability {
	switch strings.ToLower(geo.NormalizeName(s)) {
	case "висока", "high":
		return ReliabilityHigh
	case "середня", "medium":
		return ReliabilityMedium
	default:
		return ReliabilityOther
	}
}

// Bonus returns the infrastructure points earned by the grade.
func (r ElectricityReliability) Bonus() float64 {
	return reliabilityBonus[r]
}

func (r ElectricityReliability) String() string {
	if l, ok := reliabilityLabels[r]; ok {
		return l
	}
	return reliabilityLabels[ReliabilityOther]
}

// MarshalJSON encodes the grade as its Ukrainian label.
func (r ElectricityReliability) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON accepts any string; unknown labels decode to ReliabilityOther.
func (r *ElectricityReliability) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*r = ReliabilityOther
		return nil
	}
	*r = ParseElectricityReliability(s)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// CauseType
// ─────────────────────────────────────────────────────────────────────────────

// CauseType is the closed set of fire causes.  Any other value is rejected at
// ingestion.
type CauseType int

const (
	CauseHumanFactor CauseType = iota + 1
	CauseNatural
)

// Labels as they appear in the fire dataset.
const (
	CauseLabelHuman   = "людський фактор"
	CauseLabelNatural = "природні причини"
)

// ParseCauseType accepts the Ukrainian and English spellings of both causes.
func ParseCauseType(s string) (CauseType, error) {
	switch strings.ToLower(geo.NormalizeName(s)) {
	case CauseLabelHuman, "human factor", "human":
		return CauseHumanFactor, nil
	case CauseLabelNatural, "natural causes", "natural":
		return CauseNatural, nil
	default:
		return 0, fmt.Errorf("unknown cause_type %q", s)
	}
}

// IsHuman reports whether the fire was caused by people.
func (c CauseType) IsHuman() bool { return c == CauseHumanFactor }

func (c CauseType) String() string {
	switch c {
	case CauseHumanFactor:
		return CauseLabelHuman
	case CauseNatural:
		return CauseLabelNatural
	default:
		return "невідомо"
	}
}

// MarshalJSON encodes the cause as its Ukrainian label.
func (c CauseType) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON rejects values outside the two known causes.
func (c *CauseType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("cause_type must be a string: %w", err)
	}
	parsed, err := ParseCauseType(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

//Personal.AI order the ending
