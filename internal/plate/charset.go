package plate

import "strings"

// Character sets used by the plate schemes.
const (
	// Provinces lists the civil province abbreviations in keyboard order.
	Provinces = "京津沪晋冀蒙辽吉黑苏浙皖闽赣鲁豫鄂湘粤桂琼渝川贵云藏陕甘青宁新"

	// ArmyProvinces are the first characters of 2012 military plates.
	ArmyProvinces = "QVKHBSLJNGCEZ"

	// ArmyAreas are the second characters of 2012 military plates.
	ArmyAreas = "ABCDEFGHJKLMNOPRSTUVXY"

	// Digits in keyboard order.
	Digits = "1234567890"

	// Letters usable in plate serials. I and O are excluded.
	Letters = "QWERTYUPASDFGHJKLZXCVBNM"

	// DigitsAndLetters is Digits followed by Letters.
	DigitsAndLetters = Digits + Letters

	// Postfixes are the trailing Chinese characters of civil plates.
	Postfixes = string(Police) + "挂领试超"

	// HKMacao are the Hong Kong and Macao crossing-plate suffixes.
	HKMacao = string(HongKong) + string(Macao)

	// EmbassyPrefixes are the first characters of embassy plates.
	EmbassyPrefixes = string(Embassy) + "123"

	// NewEnergyMarks are the letters that mark new-energy serials.
	NewEnergyMarks = "DF"
)

// Single-character markers.
const (
	Embassy   = '使'
	HongKong  = '港'
	Macao     = '澳'
	Student   = '学'
	Police    = '警'
	Aviation  = '民'
	Airport   = '航'
	ArmedW    = 'W'
	ArmedJ    = 'J'
	PoliceO   = 'O'
	Guangdong = '粤'
	CityZ     = 'Z'
)

// IsProvince reports whether s is exactly one civil province abbreviation.
func IsProvince(s string) bool {
	r := []rune(s)
	return len(r) == 1 && isProvinceRune(r[0])
}

func isProvinceRune(r rune) bool {
	return strings.ContainsRune(Provinces, r)
}

func isArmyProvinceRune(r rune) bool {
	return strings.ContainsRune(ArmyProvinces, r)
}
