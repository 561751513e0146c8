package plate

// Type is a license-plate scheme.
type Type int

const (
	// TypeUnknown is returned when no scheme matches.
	TypeUnknown Type = iota - 1

	// TypeAutoDetect asks the engine to infer the scheme from the number.
	TypeAutoDetect

	// TypeCivil is an ordinary civil plate.
	TypeCivil

	// TypeWJ2007 is a 2007 armed police plate.
	TypeWJ2007

	// TypeWJ2012 is a 2012 armed police plate.
	TypeWJ2012

	// TypePLA2012 is a 2012 military plate.
	TypePLA2012

	// TypeNewEnergy is a new-energy vehicle plate.
	TypeNewEnergy

	// TypeSHI2007 is a 2007 embassy plate.
	TypeSHI2007

	// TypeSHI2017 is a 2017 embassy plate.
	TypeSHI2017

	// TypeAviation is a civil aviation ground vehicle plate.
	TypeAviation
)

// Types lists every defined scheme in declaration order.
var Types = []Type{
	TypeUnknown,
	TypeAutoDetect,
	TypeCivil,
	TypeWJ2007,
	TypeWJ2012,
	TypePLA2012,
	TypeNewEnergy,
	TypeSHI2007,
	TypeSHI2017,
	TypeAviation,
}

// String returns the scheme name. Undefined values report "UNKNOWN".
func (t Type) String() string {
	switch t {
	case TypeAutoDetect:
		return "AUTO_DETECT"
	case TypeCivil:
		return "CIVIL"
	case TypeWJ2007:
		return "WJ2007"
	case TypeWJ2012:
		return "WJ2012"
	case TypePLA2012:
		return "PLA2012"
	case TypeNewEnergy:
		return "NEW_ENERGY"
	case TypeSHI2007:
		return "SHI2007"
	case TypeSHI2017:
		return "SHI2017"
	case TypeAviation:
		return "AVIATION"
	default:
		return "UNKNOWN"
	}
}

// ParseType returns the Type with the given name.
func ParseType(name string) (Type, bool) {
	for _, t := range Types {
		if t.String() == name {
			return t, true
		}
	}
	return TypeUnknown, false
}

// LengthLimit returns the number of characters a plate of this scheme holds.
func (t Type) LengthLimit() int {
	switch t {
	case TypeWJ2012, TypeNewEnergy:
		return 8
	default:
		return 7
	}
}

// IsArmedPolice reports whether t is one of the armed police schemes.
func (t Type) IsArmedPolice() bool {
	return t == TypeWJ2007 || t == TypeWJ2012
}
