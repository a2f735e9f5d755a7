package dataset

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// CapacityKind discriminates the Capacity variant.
type CapacityKind int

const (
	// CapacityUnknown covers missing, null and unparseable values.
	CapacityUnknown CapacityKind = iota
	CapacityNumeric
	CapacityRange
)

// Capacity is the seat/bed capacity of a recreational point.  Datasets carry
// either a number or a range string such as "34-36"; the effective value of a
// range is its lower bound.
type Capacity struct {
	Kind CapacityKind
	Low  float64
	High float64
	// Raw keeps the original text of string-valued capacities.
	Raw string
}

// NumericCapacity builds a single-value capacity.
func NumericCapacity(v float64) Capacity {
	return Capacity{Kind: CapacityNumeric, Low: v, High: v}
}

// RangeCapacity builds a range capacity.
func RangeCapacity(low, high float64) Capacity {
	return Capacity{Kind: CapacityRange, Low: low, High: high}
}

// Effective returns the value used in supply calculations: the number, the
// low end of a range, or 0 for unknown capacities.
func (c Capacity) Effective() float64 {
	if c.Kind == CapacityUnknown {
		return 0
	}
	return c.Low
}

// Known reports whether the capacity was parseable.
func (c Capacity) Known() bool { return c.Kind != CapacityUnknown }

var capacityPattern = regexp.MustCompile(`^\s*(\d+(?:[.,]\d+)?)\s*(?:[-–—]\s*(\d+(?:[.,]\d+)?))?\s*$`)

// ParseCapacity parses a textual capacity.  "120" is numeric, "34-36" is a
// range; anything else is unknown.
func ParseCapacity(s string) Capacity {
	m := capacityPattern.FindStringSubmatch(s)
	if m == nil {
		return Capacity{Kind: CapacityUnknown, Raw: s}
	}
	low, err := parseDecimal(m[1])
	if err != nil {
		return Capacity{Kind: CapacityUnknown, Raw: s}
	}
	if m[2] == "" {
		c := NumericCapacity(low)
		c.Raw = s
		return c
	}
	high, err := parseDecimal(m[2])
	if err != nil {
		return Capacity{Kind: CapacityUnknown, Raw: s}
	}
	c := RangeCapacity(low, high)
	c.Raw = s
	return c
}

func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
}

// UnmarshalJSON accepts numbers, numeric strings and range strings.  It never
// fails: malformed values become CapacityUnknown.
func (c *Capacity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = Capacity{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*c = Capacity{}
			return nil
		}
		*c = ParseCapacity(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*c = Capacity{Kind: CapacityUnknown, Raw: string(data)}
		return nil
	}
	*c = NumericCapacity(f)
	return nil
}

// MarshalJSON writes numbers back as numbers and everything else as the
// original text.
func (c Capacity) MarshalJSON() ([]byte, error) {
	switch {
	case c.Kind == CapacityNumeric && c.Raw == "":
		return json.Marshal(c.Low)
	case c.Raw != "":
		return json.Marshal(c.Raw)
	case c.Kind == CapacityRange:
		return json.Marshal(strconv.FormatFloat(c.Low, 'f', -1, 64) + "-" + strconv.FormatFloat(c.High, 'f', -1, 64))
	default:
		return []byte("null"), nil
	}
}

//Personal.AI order the ending
