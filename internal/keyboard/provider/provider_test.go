package provider

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/platekb/internal/keyboard/key"
	"github.com/dshills/platekb/internal/keyboard/layout"
	"github.com/dshills/platekb/internal/keyboard/registry"
	"github.com/dshills/platekb/internal/plate"
)

func firstRow(l layout.Layout) string {
	return strings.Join(key.Texts(l.Rows[0]), "")
}

func TestLayoutChain(t *testing.T) {
	c := NewLayoutChain(registry.Default())

	tests := []struct {
		name     string
		args     layout.Args
		wantRule string
		wantRow0 string
	}{
		{
			name:     "special mode first position",
			args:     layout.Args{Index: 0, Mode: layout.ModeCivilSpecial},
			wantRule: "special-first",
			wantRow0: "京津沪晋冀蒙辽吉黑",
		},
		{
			name:     "armed police in special mode",
			args:     layout.Args{Index: 2, Mode: layout.ModeCivilSpecial, NumberType: plate.TypeWJ2007},
			wantRule: "armed-police-province",
			wantRow0: "1234567890京",
		},
		{
			name:     "armed police in full mode",
			args:     layout.Args{Index: 2, Mode: layout.ModeFull, NumberType: plate.TypeWJ2012},
			wantRule: "armed-police-province",
			wantRow0: "1234567890京",
		},
		{
			name:     "armed police in civil mode falls back",
			args:     layout.Args{Index: 2, Mode: layout.ModeCivil, NumberType: plate.TypeWJ2007},
			wantRule: "fallback",
			wantRow0: "1234567890",
		},
		{
			name:     "civil mode first position",
			args:     layout.Args{Index: 0, Mode: layout.ModeCivil},
			wantRule: "fallback",
			wantRow0: "京津沪晋冀蒙辽吉黑",
		},
		{
			name:     "full mode first position",
			args:     layout.Args{Index: 0, Mode: layout.ModeFull},
			wantRule: "fallback",
			wantRow0: "京津沪晋冀蒙辽吉黑苏",
		},
		{
			name:     "special mode later position uses civil layout",
			args:     layout.Args{Index: 4, Mode: layout.ModeCivilSpecial, NumberType: plate.TypeCivil},
			wantRule: "fallback",
			wantRow0: "1234567890",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, rule := c.Trace(tt.args)
			assert.Equal(t, tt.wantRule, rule)
			assert.Equal(t, tt.wantRow0, firstRow(l))
		})
	}
}

func TestLayoutChainFullArmedPoliceRow(t *testing.T) {
	c := NewLayoutChain(registry.Default())

	full := c.Process(layout.Args{Index: 2, Mode: layout.ModeFull, NumberType: plate.TypeWJ2007})
	special := c.Process(layout.Args{Index: 2, Mode: layout.ModeCivilSpecial, NumberType: plate.TypeWJ2007})

	assert.Equal(t, "川贵云藏陕甘青宁新-", strings.Join(key.Texts(full.Rows[3]), ""))
	assert.Equal(t, "贵云藏陕甘青宁新-+", strings.Join(key.Texts(special.Rows[3]), ""))
}

func TestKeyChain(t *testing.T) {
	c := NewKeyChain(registry.Default())

	digitsLetters := plate.Digits + plate.Letters
	tests := []struct {
		name string
		args layout.Args
		want string
	}{
		{"first position", layout.Args{Index: 0}, plate.Provinces + "使123W" + plate.ArmyProvinces + "民"},
		{"military area", layout.Args{Index: 1, NumberType: plate.TypePLA2012}, plate.ArmyAreas},
		{"armed police J", layout.Args{Index: 1, NumberType: plate.TypeWJ2007}, "J"},
		{"armed police 2012 J", layout.Args{Index: 1, NumberType: plate.TypeWJ2012}, "J"},
		{"aviation", layout.Args{Index: 1, NumberType: plate.TypeAviation}, "航"},
		{"embassy 2007 second", layout.Args{Index: 1, NumberType: plate.TypeSHI2007}, "123"},
		{"embassy 2017 second", layout.Args{Index: 1, NumberType: plate.TypeSHI2017}, plate.Digits},
		{"civil city code", layout.Args{Index: 1, NumberType: plate.TypeCivil}, plate.Letters + "O"},
		{"unknown city code", layout.Args{Index: 1, NumberType: plate.TypeUnknown}, plate.Letters + "O"},
		{"armed police province", layout.Args{Index: 2, NumberType: plate.TypeWJ2007}, plate.Digits + plate.Provinces},
		{"embassy third", layout.Args{Index: 2, NumberType: plate.TypeSHI2017}, plate.Digits},
		{"new energy third", layout.Args{Index: 2, NumberType: plate.TypeNewEnergy}, "1234567890DF"},
		{"civil third", layout.Args{Index: 2, NumberType: plate.TypeCivil}, digitsLetters},
		{"embassy 2007 fourth", layout.Args{Index: 3, NumberType: plate.TypeSHI2007}, plate.Digits},
		{"civil fourth", layout.Args{Index: 3, NumberType: plate.TypeCivil}, digitsLetters},
		{"new energy fifth", layout.Args{Index: 4, NumberType: plate.TypeNewEnergy}, plate.Digits},
		{"new energy sixth", layout.Args{Index: 5, NumberType: plate.TypeNewEnergy}, plate.Digits},
		{"civil sixth", layout.Args{Index: 5, NumberType: plate.TypeCivil}, digitsLetters},
		{"new energy seventh", layout.Args{Index: 6, NumberType: plate.TypeNewEnergy}, plate.Digits},
		{"military last", layout.Args{Index: 6, NumberType: plate.TypePLA2012}, digitsLetters},
		{"embassy 2017 last", layout.Args{Index: 6, NumberType: plate.TypeSHI2017}, "使"},
		{"police suffix", layout.Args{Index: 6, NumberType: plate.TypeCivil, Number: "粤O1234"}, digitsLetters + "警"},
		{"police suffix unknown type", layout.Args{Index: 6, NumberType: plate.TypeUnknown, Number: "XO1234"}, digitsLetters + "警"},
		{"hong kong macao", layout.Args{Index: 6, NumberType: plate.TypeCivil, Number: "粤Z1234"}, "港澳"},
		{"hong kong needs civil type", layout.Args{Index: 6, NumberType: plate.TypeAutoDetect, Number: "粤Z1234"}, digitsLetters + "警挂领试超学"},
		{"civil postfix", layout.Args{Index: 6, NumberType: plate.TypeCivil, Number: "京A1234"}, digitsLetters + "警挂领试超学"},
		{"new energy last", layout.Args{Index: 7, NumberType: plate.TypeNewEnergy}, "1234567890DF"},
		{"armed police 2012 last", layout.Args{Index: 7, NumberType: plate.TypeWJ2012}, digitsLetters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Process(tt.args).String())
		})
	}
}

func TestKeyChainScenarioArmedPoliceThirdPosition(t *testing.T) {
	c := NewKeyChain(registry.Default())
	args := layout.Args{Index: 2, Mode: layout.ModeFull, Number: "W", NumberType: plate.Classify("W")}

	got, rule := c.Trace(args)
	assert.Equal(t, "position-2", rule)
	assert.True(t, got.Contains("京"))
	assert.False(t, got.Contains("A"))
}

func TestKeyChainSingleSetsUseDefaultVariant(t *testing.T) {
	reg := registry.Default()
	c := NewKeyChain(reg)

	tests := []struct {
		name     string
		args     layout.Args
		category registry.KeySetCategory
	}{
		{"first position", layout.Args{Index: 0}, registry.KeysAny},
		{"embassy 2017 second", layout.Args{Index: 1, NumberType: plate.TypeSHI2017}, registry.KeysNumeric},
		{"new energy third", layout.Args{Index: 2, NumberType: plate.TypeNewEnergy}, registry.KeysNumericDF},
		{"embassy 2017 last", layout.Args{Index: 6, NumberType: plate.TypeSHI2017}, registry.KeysEmbassySuffix},
		{"police suffix", layout.Args{Index: 6, NumberType: plate.TypeCivil, Number: "粤O1234"}, registry.KeysPolice},
		{"hong kong macao", layout.Args{Index: 6, NumberType: plate.TypeCivil, Number: "粤Z1234"}, registry.KeysHKMacao},
		{"civil postfix", layout.Args{Index: 6, NumberType: plate.TypeCivil, Number: "京A1234"}, registry.KeysPostfix},
		{"fallback", layout.Args{Index: 3, NumberType: plate.TypeCivil}, registry.KeysNumericLetters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, ok := reg.KeySet(tt.category, registry.DefaultVariant)
			require.True(t, ok)
			assert.Equal(t, want, c.Process(tt.args))
		})
	}
}
