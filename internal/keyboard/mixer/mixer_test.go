package mixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/platekb/internal/keyboard/key"
	"github.com/dshills/platekb/internal/keyboard/layout"
	"github.com/dshills/platekb/internal/plate"
)

func find(t *testing.T, keys []key.Key, text string) key.Key {
	t.Helper()
	for _, k := range keys {
		if k.Text == text {
			return k
		}
	}
	t.Fatalf("key %q not found", text)
	return key.Key{}
}

func findCode(t *testing.T, keys []key.Key, code key.Code) key.Key {
	t.Helper()
	for _, k := range keys {
		if k.Code == code {
			return k
		}
	}
	t.Fatalf("key with code %s not found", code)
	return key.Key{}
}

func skeleton() layout.Layout {
	return layout.New(key.Keys("京津A1"), key.Keys("使W-+"))
}

func TestDefaultOrder(t *testing.T) {
	assert.Equal(t, []string{
		StepAvailability,
		StepNewEnergy,
		StepFunctionKeys,
		StepDelete,
		StepConfirm,
		StepFlatten,
	}, Default().Names())
}

func TestAvailability(t *testing.T) {
	l := Availability(skeleton(), layout.Args{Keys: key.SetOf("京A")})
	keys := l.Flatten()

	assert.True(t, find(t, keys, "京").Enabled)
	assert.True(t, find(t, keys, "A").Enabled)
	assert.False(t, find(t, keys, "津").Enabled)
	assert.False(t, find(t, keys, "1").Enabled)
	assert.False(t, find(t, keys, "-").Enabled)
}

func TestNewEnergyOnlyAtFirstPosition(t *testing.T) {
	legal := key.SetOf("京津使W1")
	base := Availability(skeleton(), layout.Args{Keys: legal})

	first := NewEnergy(base, layout.Args{Index: 0, NumberType: plate.TypeNewEnergy, Keys: legal}).Flatten()
	assert.True(t, find(t, first, "京").Enabled)
	assert.True(t, find(t, first, "津").Enabled)
	assert.False(t, find(t, first, "使").Enabled)
	assert.False(t, find(t, first, "W").Enabled)
	assert.False(t, find(t, first, "1").Enabled)

	later := NewEnergy(base, layout.Args{Index: 1, NumberType: plate.TypeNewEnergy, Keys: legal}).Flatten()
	assert.True(t, find(t, later, "使").Enabled)

	civil := NewEnergy(base, layout.Args{Index: 0, NumberType: plate.TypeCivil, Keys: legal}).Flatten()
	assert.True(t, find(t, civil, "W").Enabled)
}

func TestNewEnergyNeverEnables(t *testing.T) {
	base := Availability(skeleton(), layout.Args{Keys: key.SetOf("津")})
	out := NewEnergy(base, layout.Args{Index: 0, NumberType: plate.TypeNewEnergy}).Flatten()
	assert.False(t, find(t, out, "京").Enabled)
	assert.True(t, find(t, out, "津").Enabled)
}

func TestFunctionKeys(t *testing.T) {
	base := skeleton().Map(func(k key.Key) key.Key { return k.WithEnabled(false) })
	out := FunctionKeys(base, layout.Args{}).Flatten()

	del := findCode(t, out, key.CodeDelete)
	assert.Equal(t, "", del.Text)
	assert.False(t, del.Enabled)
	assert.True(t, del.IsFunction())

	ok := findCode(t, out, key.CodeConfirm)
	assert.Equal(t, ConfirmText, ok.Text)
	assert.False(t, ok.Enabled)

	for _, k := range out {
		if k.Text == "-" || k.Text == "+" {
			t.Errorf("placeholder %q left in layout", k.Text)
		}
	}
	assert.Equal(t, key.CodeGeneral, find(t, out, "京").Code)
}

func TestDeleteAndConfirmEnablement(t *testing.T) {
	tests := []struct {
		name        string
		number      string
		numberType  plate.Type
		wantDelete  bool
		wantConfirm bool
	}{
		{"empty", "", plate.TypeCivil, false, false},
		{"one short", "粤A1234", plate.TypeCivil, true, false},
		{"complete", "粤A12345", plate.TypeCivil, true, true},
		{"new energy seven of eight", "粤AD1234", plate.TypeNewEnergy, true, false},
		{"new energy complete", "粤AD12345", plate.TypeNewEnergy, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := layout.Args{Number: tt.number, NumberType: tt.numberType}
			l := FunctionKeys(skeleton(), args)
			l = Confirm(Delete(l, args), args)
			keys := l.Flatten()

			assert.Equal(t, tt.wantDelete, findCode(t, keys, key.CodeDelete).Enabled)
			assert.Equal(t, tt.wantConfirm, findCode(t, keys, key.CodeConfirm).Enabled)
		})
	}
}

func TestDefaultPipeline(t *testing.T) {
	args := layout.Args{Index: 0, Number: "", NumberType: plate.TypeAutoDetect, Keys: key.SetOf("京津使W")}
	l := skeleton()

	out, err := Default().Process(l, args)
	require.NoError(t, err)
	require.Len(t, out.Keys, 8)

	assert.True(t, find(t, out.Keys, "京").Enabled)
	assert.False(t, find(t, out.Keys, "A").Enabled)
	assert.False(t, findCode(t, out.Keys, key.CodeDelete).Enabled)
	assert.False(t, findCode(t, out.Keys, key.CodeConfirm).Enabled)

	for _, k := range l.Flatten() {
		assert.True(t, k.Enabled, "skeleton key %q modified", k.Text)
	}
}

func TestFlatten(t *testing.T) {
	l := Flatten(layout.New(key.Keys("AB"), nil, key.Keys("C")), layout.Args{})
	assert.Equal(t, []string{"A", "B", "C"}, key.Texts(l.Keys))
}
