package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12.5", 12.5, true},
		{"12,5", 12.5, true},
		{"12.5g", 12.5, true},
		{"khoảng 30 kcal", 30, true},
		{"-3", -3, true},
		{"", 0, false},
		{"no digits", 0, false},
	}
	for _, c := range cases {
		got := safeFloat(c.in)
		if !c.ok {
			assert.Nil(t, got, "input %q", c.in)
			continue
		}
		require.NotNil(t, got, "input %q", c.in)
		assert.InDelta(t, c.want, *got, 0.001)
	}
}

func TestExtractMetricsUnitConversion(t *testing.T) {
	l := &Label{
		NutritionFacts: NutritionFacts{
			ServingSize: "1 gói (75g)",
			Calories:    "350 kcal",
			Nutrients: []Nutrient{
				{Name: "Sugars", Amount: "4.5", Unit: "g"},
				{Name: "Sodium", Amount: "1.2", Unit: "g"},       // g → mg
				{Name: "Saturated Fat", Amount: "800", Unit: "mg"}, // mg → g
				{Name: "Protein", Amount: "8", Unit: "g"},
			},
		},
	}
	m := l.ExtractMetrics()

	assert.Equal(t, "1 gói (75g)", m.ServingSize)
	require.NotNil(t, m.SugarsG)
	assert.InDelta(t, 4.5, *m.SugarsG, 0.001)
	require.NotNil(t, m.SodiumMG)
	assert.InDelta(t, 1200, *m.SodiumMG, 0.001)
	require.NotNil(t, m.SatfatG)
	assert.InDelta(t, 0.8, *m.SatfatG, 0.001)
	require.NotNil(t, m.Kcal)
	assert.InDelta(t, 350, *m.Kcal, 0.001)
	assert.Nil(t, m.FiberG) // 標籤沒列就是 nil
}

func TestExtractMetricsVietnameseNames(t *testing.T) {
	l := &Label{
		NutritionFacts: NutritionFacts{
			Nutrients: []Nutrient{
				{Name: "Đường", Amount: "6", Unit: "g"},
				{Name: "Natri", Amount: "450", Unit: "mg"},
				{Name: "Chất xơ", Amount: "2", Unit: "g"},
			},
		},
	}
	m := l.ExtractMetrics()
	require.NotNil(t, m.SugarsG)
	assert.InDelta(t, 6, *m.SugarsG, 0.001)
	require.NotNil(t, m.SodiumMG)
	assert.InDelta(t, 450, *m.SodiumMG, 0.001)
	require.NotNil(t, m.FiberG)
	assert.InDelta(t, 2, *m.FiberG, 0.001)
}

func TestAdditivesCount(t *testing.T) {
	l := &Label{IngredientsRaw: "nước, đường, chất điều vị (E621), chất bảo quản E202, hương liệu tổng hợp"}
	// E 編號 + 關鍵字都計入
	assert.GreaterOrEqual(t, l.ExtractMetrics().AdditivesCount, 4)

	clean := &Label{IngredientsRaw: "nước, đường, muối"}
	assert.Equal(t, 0, clean.ExtractMetrics().AdditivesCount)
}

func TestTransfatFlag(t *testing.T) {
	assert.True(t, (&Label{IngredientsRaw: "dầu thực vật hydrogenated"}).ExtractMetrics().TransfatFlag)
	assert.True(t, (&Label{IngredientsRaw: "có dầu hydro hóa một phần"}).ExtractMetrics().TransfatFlag)
	assert.False(t, (&Label{IngredientsRaw: "dầu olive nguyên chất"}).ExtractMetrics().TransfatFlag)
}

func TestLabelText(t *testing.T) {
	l := &Label{
		IngredientsRaw: "Trà Ô Long, nước",
		Ingredients:    []Ingredient{{Name: "Trà"}, {Name: "Nước"}},
	}
	text := l.Text()
	assert.Contains(t, text, "trà ô long")
	assert.Contains(t, text, "nước")

	var nilLabel *Label
	assert.Equal(t, "", nilLabel.Text())
}

func TestExtractMetricsNilLabel(t *testing.T) {
	var l *Label
	m := l.ExtractMetrics()
	assert.Nil(t, m.SugarsG)
	assert.Equal(t, 0, m.AdditivesCount)
	assert.False(t, m.TransfatFlag)
}
