package measurement

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseQuantity parses free-text quantity notation into a numeric value.
// Supported shapes: decimals ("2", "2.5"), fractions ("1/2"), mixed numbers
// ("1 1/2") and ranges ("3-4", averaged). Purely descriptive text such as
// "a pinch" or "to taste" yields nil, which is not an error: the line is
// routed to the unmatched-notes path instead of numeric consolidation.
func ParseQuantity(text string) *float64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}

	if v, ok := parseRange(s); ok {
		return positive(v)
	}
	if v, ok := parseMixed(s); ok {
		return positive(v)
	}
	if v, ok := parseFraction(s); ok {
		return positive(v)
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return positive(v)
	}
	return nil
}

// positive rejects non-positive quantities as malformed
func positive(v float64) *float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// parseRange handles "3-4" style quantities, returning the average
func parseRange(s string) (float64, bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, false
	}
	lo, okLo := parseSimple(strings.TrimSpace(parts[0]))
	hi, okHi := parseSimple(strings.TrimSpace(parts[1]))
	if !okLo || !okHi {
		return 0, false
	}
	return (lo + hi) / 2, true
}

// parseMixed handles "1 1/2" style quantities
func parseMixed(s string) (float64, bool) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, false
	}
	whole, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	frac, ok := parseFraction(fields[1])
	if !ok {
		return 0, false
	}
	return whole + frac, true
}

// parseFraction handles "1/2" style quantities
func parseFraction(s string) (float64, bool) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, false
	}
	num, errN := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	den, errD := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errN != nil || errD != nil || den == 0 {
		return 0, false
	}
	return num / den, true
}

// parseSimple parses a plain number or fraction, used for range endpoints
func parseSimple(s string) (float64, bool) {
	if v, ok := parseFraction(s); ok {
		return v, true
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// cookingFractions are the fraction glyphs recipes conventionally use
var cookingFractions = []struct {
	value float64
	text  string
}{
	{1.0 / 8, "1/8"},
	{1.0 / 4, "1/4"},
	{1.0 / 3, "1/3"},
	{3.0 / 8, "3/8"},
	{1.0 / 2, "1/2"},
	{5.0 / 8, "5/8"},
	{2.0 / 3, "2/3"},
	{3.0 / 4, "3/4"},
	{7.0 / 8, "7/8"},
}

const fractionTolerance = 0.05

// FormatQuantity renders a quantity the way a recipe would print it,
// e.g. 4.5 becomes "4 1/2" and 0.33 becomes "1/3". Values not near a
// common cooking fraction fall back to a short decimal form.
func FormatQuantity(v float64) string {
	whole := math.Floor(v)
	frac := v - whole

	if frac < fractionTolerance {
		if whole == 0 {
			return trimDecimal(v)
		}
		return strconv.FormatFloat(whole, 'f', -1, 64)
	}
	if frac > 1-fractionTolerance {
		return strconv.FormatFloat(whole+1, 'f', -1, 64)
	}

	// Nearest fraction wins: thirds and eighths sit within tolerance of
	// each other, so first-match would misprint 2/3 as 5/8.
	best := -1
	for i, cf := range cookingFractions {
		diff := math.Abs(frac - cf.value)
		if diff >= fractionTolerance {
			continue
		}
		if best < 0 || diff < math.Abs(frac-cookingFractions[best].value) {
			best = i
		}
	}
	if best >= 0 {
		if whole == 0 {
			return cookingFractions[best].text
		}
		return fmt.Sprintf("%s %s", strconv.FormatFloat(whole, 'f', -1, 64), cookingFractions[best].text)
	}
	return trimDecimal(v)
}

func trimDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
