package plate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// newEnergyPattern matches a complete 8-character new-energy plate:
// province, city letter, digit or D/F, alphanumeric, three digits, digit or D/F.
var newEnergyPattern = regexp.MustCompile(`^[` + Provinces + `][A-Z][0-9DF][0-9A-Z][0-9]{3}[0-9DF]$`)

// Classify infers the plate scheme from a partial or complete number.
func Classify(number string) Type {
	if number == "" {
		return TypeAutoDetect
	}

	runes := []rune(number)
	first := runes[0]

	switch {
	case isArmyProvinceRune(first):
		return TypePLA2012
	case first == Embassy:
		return TypeSHI2007
	case first == Aviation:
		return TypeAviation
	case strings.ContainsRune("123", first):
		return TypeSHI2017
	case first == ArmedW:
		if len(runes) >= 3 && isProvinceRune(runes[2]) {
			return TypeWJ2012
		}
		return TypeWJ2007
	case isProvinceRune(first):
		if len(runes) == 8 {
			if newEnergyPattern.MatchString(number) {
				return TypeNewEnergy
			}
			return TypeUnknown
		}
		return TypeCivil
	}

	return TypeUnknown
}

// EffectiveType returns the scheme the engine should use. A non-empty number
// with TypeAutoDetect is classified; any other request is returned unchanged,
// which lets callers force a scheme the number alone would not produce.
func EffectiveType(number string, requested Type) Type {
	if number != "" && requested == TypeAutoDetect {
		return Classify(number)
	}
	return requested
}

// Len returns the number of characters in a plate number.
func Len(number string) int {
	return utf8.RuneCountInString(number)
}

// CharAt returns the i-th character of number, or 0 when out of range.
func CharAt(number string, i int) rune {
	if i < 0 {
		return 0
	}
	for _, r := range number {
		if i == 0 {
			return r
		}
		i--
	}
	return 0
}
