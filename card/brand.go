package card

import "regexp"

// Brand describes one payment network's rules. Brands are structurally
// identical configuration records; behavior lives on the shared methods.
type Brand struct {
	Name      string
	CVVLength int
	// Groupings lists the accepted digit-group layouts for display
	// formatting. Accepted number lengths derive from the grouping sums.
	Groupings [][]int
	pattern   *regexp.Regexp
}

// Pattern returns the identifying prefix pattern for the brand, or the empty
// string for the unknown brand.
func (b Brand) Pattern() string {
	if b.pattern == nil {
		return ""
	}
	return b.pattern.String()
}

// Known reports whether the brand is one of the supported networks.
func (b Brand) Known() bool { return b.pattern != nil }

// MinLength is the shortest accepted number length for the brand.
func (b Brand) MinLength() int {
	min := 0
	for _, g := range b.Groupings {
		if l := sum(g); min == 0 || l < min {
			min = l
		}
	}
	return min
}

// MaxLength is the longest accepted number length for the brand.
func (b Brand) MaxLength() int {
	max := 0
	for _, g := range b.Groupings {
		if l := sum(g); l > max {
			max = l
		}
	}
	return max
}

func sum(g []int) int {
	t := 0
	for _, n := range g {
		t += n
	}
	return t
}

func brand(name string, cvvLength int, groupings [][]int, pattern string) Brand {
	return Brand{
		Name:      name,
		CVVLength: cvvLength,
		Groupings: groupings,
		pattern:   regexp.MustCompile(pattern),
	}
}

// Unknown is the fallback classification for numbers that match no supported
// network. It never panics a caller; validation against it reports Invalid.
var Unknown = Brand{Name: "Unknown"}

// brands is the supported set, in match order. Patterns are mutually
// exclusive within the set, so first match wins.
var brands = []Brand{
	brand("Visa", 3, [][]int{{4, 4, 4, 4}}, `^4`),
	brand("Mastercard", 3, [][]int{{4, 4, 4, 4}}, `^(5[1-5]|2[2-7])`),
	brand("American Express", 4, [][]int{{4, 6, 5}}, `^3[47]`),
	brand("JCB", 3, [][]int{{4, 4, 4, 4}, {4, 4, 4, 4, 3}}, `^35`),
	brand("Diners Club", 3, [][]int{{4, 6, 4}}, `^3(0[0-5]|[689])`),
	brand("Discover", 3, [][]int{{4, 4, 4, 4}}, `^6(011|4[4-9]|5)`),
	brand("China UnionPay", 3, [][]int{{4, 4, 4, 4}, {4, 4, 4, 5}, {4, 4, 4, 6}, {4, 4, 4, 4, 3}}, `^(62|603367)`),
	brand("Maestro", 3, [][]int{{4, 4, 4, 4}, {4, 4, 4, 4, 3}}, `^(50|5[6-9]|6304|6759|676[1-3])`),
}

// Brands returns the supported brand set in match order.
func Brands() []Brand {
	out := make([]Brand, len(brands))
	copy(out, brands)
	return out
}

// Match identifies the brand of a card number by testing the normalized
// digits against each brand's identifying pattern. Returns Unknown when
// nothing matches or the input has no leading digits to test.
func Match(number Number) Brand {
	digits := number.Sanitized()
	if digits == "" || !IsDigits(digits) {
		return Unknown
	}
	for _, b := range brands {
		if b.pattern.MatchString(digits) {
			return b
		}
	}
	return Unknown
}

// Format groups normalized digits according to the brand's first grouping
// that fits the digit count, separated by single spaces. Unknown brands and
// unmatched lengths return the digits ungrouped.
func (b Brand) Format(number Number) string {
	digits := number.Sanitized()
	for _, g := range b.Groupings {
		if sum(g) != len(digits) {
			continue
		}
		out := make([]byte, 0, len(digits)+len(g))
		i := 0
		for gi, n := range g {
			if gi > 0 {
				out = append(out, ' ')
			}
			out = append(out, digits[i:i+n]...)
			i += n
		}
		return string(out)
	}
	return digits
}
