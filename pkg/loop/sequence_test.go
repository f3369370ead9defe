package loop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  []string
	}{
		{"empty", nil, []string{}},
		{"single", []string{"A"}, []string{"A", "A", "A"}},
		{"pair", []string{"A", "B"}, []string{"B", "A", "B", "A"}},
		{"four", []string{"A", "B", "C", "D"}, []string{"D", "A", "B", "C", "D", "A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := Pad(tt.items)
			assert.Equal(t, tt.want, seq.Items())
			assert.Equal(t, len(tt.want), seq.Len())
			assert.Equal(t, len(tt.items), seq.RealLen())
			assert.Equal(t, len(tt.items) > 0, seq.Looping())
		})
	}
}

func TestPadCopiesInput(t *testing.T) {
	items := []string{"A", "B"}
	seq := Pad(items)
	items[0] = "Z"
	got, _ := seq.At(1)
	assert.Equal(t, "A", got)
}

func TestPadKeepsDuplicatesPositional(t *testing.T) {
	seq := Pad([]string{"X", "X", "Y"})
	assert.Equal(t, 5, seq.Len())
	assert.Equal(t, 0, seq.Real(1))
	assert.Equal(t, 1, seq.Real(2))
	assert.Equal(t, 2, seq.Real(3))
}

func TestSlot(t *testing.T) {
	seq := Pad([]string{"A", "B", "C", "D"})
	tests := []struct {
		index int
		want  Slot
	}{
		{-1, SlotOutOfRange},
		{0, SlotPadLow},
		{1, SlotReal},
		{4, SlotReal},
		{5, SlotPadHigh},
		{6, SlotOutOfRange},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, seq.Slot(tt.index), "Slot(%d)", tt.index)
	}
}

func TestSlotDegenerate(t *testing.T) {
	seq := Pad[string](nil)
	assert.Equal(t, SlotReal, seq.Slot(0))
	assert.Equal(t, SlotOutOfRange, seq.Slot(1))
	assert.Equal(t, SlotOutOfRange, seq.Slot(-1))
	assert.Equal(t, 0, seq.First())
	assert.Equal(t, 0, seq.Last())
	assert.Equal(t, -1, seq.Real(0))
	_, ok := seq.At(0)
	assert.False(t, ok)
}

func TestResolveAndReal(t *testing.T) {
	seq := Pad([]string{"A", "B", "C", "D"})
	assert.Equal(t, 4, seq.Resolve(0))
	assert.Equal(t, 1, seq.Resolve(5))
	assert.Equal(t, 3, seq.Resolve(3))
	assert.Equal(t, -1, seq.Resolve(9))

	assert.Equal(t, 3, seq.Real(0))
	assert.Equal(t, 0, seq.Real(5))
	assert.Equal(t, 2, seq.Real(3))
	assert.Equal(t, -1, seq.Real(-4))
}

func TestSlotString(t *testing.T) {
	assert.Equal(t, "real", SlotReal.String())
	assert.Equal(t, "pad-low", SlotPadLow.String())
	assert.Equal(t, "pad-high", SlotPadHigh.String())
	assert.Equal(t, "out-of-range", SlotOutOfRange.String())
	assert.Equal(t, "Slot(42)", Slot(42).String())
}

func TestIsPadding(t *testing.T) {
	seq := Pad([]string{"A", "B", "C"})
	var got []bool
	for i := -1; i <= seq.Len(); i++ {
		got = append(got, seq.IsPadding(i))
	}
	assert.Equal(t, []bool{false, true, false, false, false, true, false}, got)

	assert.False(t, Pad[string](nil).IsPadding(0))
}
