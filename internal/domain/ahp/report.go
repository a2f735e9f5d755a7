package ahp

import (
	"fmt"
	"math"
	"strings"
)

// ScoringMaximum is a weight expressed in points out of 100.
type ScoringMaximum struct {
	Key    string `json:"key"`
	Points int    `json:"points"`
}

// ScoringMaxima converts weights into integer points (round(w·100)).  The
// saturation criterion is a penalty and is reported negative.  Criteria not
// among the seven scoring factors keep their own name as key.
func ScoringMaxima(w Weights) []ScoringMaximum {
	out := make([]ScoringMaximum, 0, len(w))
	for _, x := range w {
		key, ok := scoringKeys[x.Criterion]
		if !ok {
			key = x.Criterion
		}
		points := int(math.Round(x.Value * 100))
		if x.Criterion == CriterionSaturation {
			points = -points
		}
		out = append(out, ScoringMaximum{Key: key, Points: points})
	}
	return out
}

// Report bundles everything the AHP endpoint and CLI display.
type Report struct {
	Criteria       []string         `json:"criteria"`
	Matrix         Matrix           `json:"matrix"`
	Weights        Weights          `json:"weights"`
	Maxima         []ScoringMaximum `json:"scoring_maxima"`
	Consistency    Consistency      `json:"consistency"`
	Justifications []Justification  `json:"justifications,omitempty"`
	Method         string           `json:"method"`
}

// Report computes weights and consistency and returns the full report.
func (c *Calculator) Report(justifications []Justification) Report {
	w := c.Weights()
	return Report{
		Criteria:       c.Criteria(),
		Matrix:         c.matrix,
		Weights:        w,
		Maxima:         ScoringMaxima(w),
		Consistency:    c.Consistency(w),
		Justifications: justifications,
		Method:         "geometric mean",
	}
}

// Render formats the report as plain text.
func (r Report) Render() string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)
	sub := strings.Repeat("-", 80)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "ЗВІТ РОЗРАХУНКУ ВАГ МЕТОДОМ AHP")
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)

	n := len(r.Criteria)
	fmt.Fprintf(&b, "1. МАТРИЦЯ ПОПАРНИХ ПОРІВНЯНЬ (%d×%d)\n", n, n)
	fmt.Fprintln(&b, sub)
	b.WriteString(strings.Repeat(" ", 16))
	for _, name := range r.Criteria {
		fmt.Fprintf(&b, "%8s", shorten(name, 6))
	}
	b.WriteString("\n")
	for i, row := range r.Matrix {
		fmt.Fprintf(&b, "%-16s", shorten(r.Criteria[i], 15))
		for _, v := range row {
			fmt.Fprintf(&b, "%8.3f", v)
		}
		b.WriteString("\n")
	}
	fmt.Fprintln(&b)

	if len(r.Justifications) > 0 {
		fmt.Fprintln(&b, "2. ОБҐРУНТУВАННЯ ПОПАРНИХ ПОРІВНЯНЬ")
		fmt.Fprintln(&b, sub)
		for _, j := range r.Justifications {
			fmt.Fprintf(&b, "• %s: %s\n", j.Comparison, j.Reason)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, "3. РОЗРАХОВАНІ ВАГИ КРИТЕРІЇВ")
	fmt.Fprintln(&b, sub)
	for _, w := range r.Weights {
		fmt.Fprintf(&b, "%-20s %6.4f (%5.2f%%)\n", w.Criterion, w.Value, w.Value*100)
	}
	total := r.Weights.Sum()
	fmt.Fprintf(&b, "%-20s %6.4f (%5.2f%%)\n", "СУМА", total, total*100)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "4. КОНВЕРТАЦІЯ У БАЛИ (МАКС 100)")
	fmt.Fprintln(&b, sub)
	abs := 0
	for _, m := range r.Maxima {
		fmt.Fprintf(&b, "%-25s %4d\n", m.Key, m.Points)
		if m.Points < 0 {
			abs -= m.Points
		} else {
			abs += m.Points
		}
	}
	fmt.Fprintf(&b, "%-25s %4d\n", "СУМА (абсолютна)", abs)
	fmt.Fprintln(&b)

	c := r.Consistency
	fmt.Fprintln(&b, "5. ПЕРЕВІРКА УЗГОДЖЕНОСТІ")
	fmt.Fprintln(&b, sub)
	fmt.Fprintf(&b, "λmax:                    %.4f\n", c.LambdaMax)
	fmt.Fprintf(&b, "Consistency Index (CI):  %.4f\n", c.CI)
	fmt.Fprintf(&b, "Consistency Ratio (CR):  %.4f (%.2f%%)\n", c.CR, c.CR*100)
	fmt.Fprintf(&b, "Random Index (RI) n=%d:   %.2f\n", n, c.RI)
	if c.IsConsistent {
		fmt.Fprintln(&b, "Статус: ✓ УЗГОДЖЕНА (CR < 0.1)")
	} else {
		fmt.Fprintln(&b, "Статус: ✗ НЕ УЗГОДЖЕНА (CR >= 0.1)")
		fmt.Fprintln(&b, "УВАГА: необхідно переглянути попарні порівняння.")
	}
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Метод: %s\n", r.Method)
	return b.String()
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

//Personal.AI order the ending
