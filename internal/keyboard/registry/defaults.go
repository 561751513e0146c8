package registry

import (
	"github.com/dshills/platekb/internal/keyboard/key"
	"github.com/dshills/platekb/internal/keyboard/layout"
	"github.com/dshills/platekb/internal/plate"
)

// Placeholder texts replaced by function keys during composition.
const (
	DeletePlaceholder  = "-"
	ConfirmPlaceholder = "+"
)

const (
	rowQtoP  = "QWERTYUIOP"
	rowQtoOP = "QWERTYUOP"
	rowQtoUP = "QWERTYUP"
	rowAtoL  = "ASDFGHJKL"
	rowZtoM  = "ZXCVBNM"
	delOK    = DeletePlaceholder + ConfirmPlaceholder
	blank    = " "
)

// provinces returns the provinces in [from, to) by rune position.
func provinces(from, to int) string {
	r := []rune(plate.Provinces)
	return string(r[from:to])
}

func rows(rs ...string) layout.Layout {
	keys := make([][]key.Key, len(rs))
	for i, r := range rs {
		keys[i] = key.Keys(r)
	}
	return layout.New(keys...)
}

// positions lists the cursor positions from..to inclusive.
func positions(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func registerLayouts(b *builder) {
	hkMacao := plate.HKMacao
	student := string(plate.Student)
	airport := string(plate.Airport)
	embassy := string(plate.Embassy)
	armedW := string(plate.ArmedW)

	// Civil keyboard. The last province row is padded to nine columns.
	b.layout(rows(
		provinces(0, 9),
		provinces(9, 18),
		provinces(18, 27),
		provinces(27, 31)+blank+blank+delOK,
	), LayoutCivil, 0)
	b.layout(rows(
		plate.Digits,
		rowQtoOP+string(plate.Macao),
		rowAtoL+string(plate.HongKong),
		rowZtoM+delOK,
	), LayoutCivil, 1)
	b.layout(rows(
		plate.Digits,
		rowQtoUP+hkMacao,
		rowAtoL+student,
		rowZtoM+delOK,
	), LayoutCivil, positions(2, 7)...)

	// Civil keyboard with armed police and embassy keys.
	b.layout(rows(
		provinces(0, 9),
		provinces(9, 18),
		provinces(18, 26),
		provinces(26, 31)+embassy+armedW+delOK,
	), LayoutCivilSpecial, 0)
	b.layout(rows(
		plate.Digits+provinces(0, 1),
		provinces(1, 12),
		provinces(12, 23),
		provinces(23, 31)+delOK,
	), LayoutCivilSpecial, 2)
	b.layout(rows(
		plate.Digits+provinces(0, 1),
		provinces(1, 12),
		provinces(12, 22),
		provinces(22, 31)+DeletePlaceholder,
	), LayoutCivilSpecialFull, 2)

	// Full keyboard.
	b.layout(rows(
		provinces(0, 10),
		provinces(10, 20),
		provinces(20, 30),
		provinces(30, 31)+string(plate.Aviation)+plate.EmbassyPrefixes+armedW+plate.ArmyProvinces[:4],
		plate.ArmyProvinces[4:]+DeletePlaceholder,
	), LayoutFull, 0)
	b.layout(rows(
		plate.Digits,
		rowQtoP,
		rowAtoL,
		rowZtoM+student+airport,
		hkMacao+plate.Postfixes+embassy+DeletePlaceholder,
	), LayoutFull, 1)
	b.layout(rows(
		plate.Digits,
		rowQtoP,
		rowAtoL,
		rowZtoM+student,
		hkMacao+plate.Postfixes+embassy+DeletePlaceholder,
	), LayoutFull, positions(2, 7)...)
}

func registerKeySets(b *builder) {
	b.keys(plate.Provinces+plate.EmbassyPrefixes+string(plate.ArmedW)+plate.ArmyProvinces+string(plate.Aviation), KeysAny)
	b.keys(plate.Digits, KeysNumeric)
	b.keys(plate.DigitsAndLetters, KeysNumericLetters)
	b.keys(plate.DigitsAndLetters+string(plate.Police), KeysPolice)

	b.keys(plate.Letters+string(plate.PoliceO), KeysCivil, 1)
	b.keys(plate.ArmyAreas, KeysArmy, 1)
	b.keys("123", KeysEmbassy, 1)
	b.keys(string(plate.ArmedJ), KeysArmedPolice, 1)
	b.keys(string(plate.Airport), KeysAviation, 1)

	b.keys(plate.Digits+plate.Provinces, KeysArmedPolice, 2)

	b.keys(plate.Digits+plate.NewEnergyMarks, KeysNumericDF)
	b.keys(plate.HKMacao, KeysHKMacao)
	b.keys(plate.DigitsAndLetters+plate.Postfixes+string(plate.Student), KeysPostfix)
	b.keys(string(plate.Embassy), KeysEmbassySuffix)
}
