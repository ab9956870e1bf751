package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_KnownCodes(t *testing.T) {
	assert.Equal(t, "$300.00", Format(300, USD))
	assert.Equal(t, "€19.99", Format(19.99, EUR))
	assert.Equal(t, "£0.50", Format(0.5, GBP))
	assert.Equal(t, "C$12.30", Format(12.3, CAD))
	assert.Equal(t, "A$7.00", Format(7, AUD))
}

func TestFormat_GhanaCedi(t *testing.T) {
	got := Format(42.5, GHS)
	assert.Equal(t, "₵42.50", got)
}

func TestFormat_UnknownCodeFallsBackToDollar(t *testing.T) {
	assert.NotPanics(t, func() {
		got := Format(10, Code("XXX"))
		assert.Equal(t, "$10.00", got)
	})
	assert.False(t, Known(Code("XXX")))
}

func TestFormat_NegativeKeepsMinusSign(t *testing.T) {
	assert.Equal(t, "$-50.00", Format(-50, USD))
}

func TestFormat_TwoDecimalRounding(t *testing.T) {
	assert.Equal(t, "$0.10", Format(0.1, USD))
	assert.Equal(t, "$1234.57", Format(1234.567, USD))
}

func TestFormatNumber_EmptyIsZero(t *testing.T) {
	var n Number
	require.True(t, n.IsEmpty())
	assert.Equal(t, "$0.00", FormatNumber(n, USD))
}

func TestSubtotal(t *testing.T) {
	lines := []Line{
		{Quantity: NumberOf(2), UnitPrice: NumberOf(150)},
		{Quantity: NumberOf(1), UnitPrice: NumberOf(49.5)},
	}
	assert.InDelta(t, 349.5, Subtotal(lines), 1e-9)
}

func TestSubtotal_EmptyFieldsCountAsZero(t *testing.T) {
	lines := []Line{
		{Quantity: Number{}, UnitPrice: NumberOf(100)},
		{Quantity: NumberOf(3), UnitPrice: Number{}},
	}
	assert.Equal(t, 0.0, Subtotal(lines))
}

func TestBalanceDue_AllowsNegative(t *testing.T) {
	lines := []Line{{Quantity: NumberOf(1), UnitPrice: NumberOf(100)}}
	got := BalanceDue(lines, NumberOf(150))
	assert.Equal(t, -50.0, got)
}

func TestBalanceDue_Idempotent(t *testing.T) {
	lines := []Line{{Quantity: NumberOf(2), UnitPrice: NumberOf(150)}}
	first := BalanceDue(lines, NumberOf(0))
	second := BalanceDue(lines, NumberOf(0))
	assert.Equal(t, first, second)
	assert.Equal(t, 300.0, first)
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		val   float64
		empty bool
	}{
		{"number", `12.5`, 12.5, false},
		{"quoted number", `"7"`, 7, false},
		{"empty string", `""`, 0, true},
		{"null", `null`, 0, true},
		{"garbage", `"abc"`, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var n Number
			require.NoError(t, json.Unmarshal([]byte(tc.in), &n))
			assert.Equal(t, tc.val, n.Float64())
			assert.Equal(t, tc.empty, n.IsEmpty())
		})
	}
}

func TestNumber_MarshalRoundTrip(t *testing.T) {
	out, err := json.Marshal(NumberOf(9.75))
	require.NoError(t, err)
	assert.Equal(t, `9.75`, string(out))

	var empty Number
	out, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, `""`, string(out))
}
