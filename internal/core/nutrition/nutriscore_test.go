package nutrition

import (
	"testing"

	"healthscan-api/internal/core/catalog"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestLadderPoints(t *testing.T) {
	steps := []float64{4.5, 9, 13.5}
	assert.Equal(t, 0, ladderPoints(0, steps))
	assert.Equal(t, 0, ladderPoints(4.5, steps)) // 邊界含在低分側
	assert.Equal(t, 1, ladderPoints(4.6, steps))
	assert.Equal(t, 2, ladderPoints(13.5, steps))
	assert.Equal(t, 3, ladderPoints(100, steps)) // 超過最後一階得滿分
}

func TestGradeLowNutrientBeverage(t *testing.T) {
	nut := catalog.NutrientProfile{
		SugarsG:    f(2),
		SodiumG:    f(0.05),
		SatfatG:    f(0.5),
		EnergyKcal: f(20),
	}
	score := Grade(nut, true)
	assert.Equal(t, 0, score.Points)
	assert.Equal(t, "B", score.Grade)
}

func TestGradeHighSugarBeverage(t *testing.T) {
	nut := catalog.NutrientProfile{
		SugarsG:    f(11), // 10.5g/100ml 一瓶可樂的量級
		SodiumG:    f(0.01),
		EnergyKcal: f(44),
	}
	score := Grade(nut, true)
	// energy 184 kJ → 0, sugar 11 → 2, satfat 0 → 0, sodium 10mg → 0
	assert.Equal(t, 2, score.Points)
	assert.Equal(t, "C", score.Grade)
}

func TestGradeFoodCutoffs(t *testing.T) {
	cases := []struct {
		points int
		want   string
	}{
		{-2, "A"},
		{-1, "A"},
		{0, "B"},
		{2, "B"},
		{3, "C"},
		{10, "C"},
		{11, "D"},
		{18, "D"},
		{19, "E"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, gradeLetter(c.points, false), "points %d", c.points)
	}
}

func TestGradeBeverageCutoffs(t *testing.T) {
	// 飲料永遠拿不到 A
	cases := []struct {
		points int
		want   string
	}{
		{-3, "B"},
		{1, "B"},
		{2, "C"},
		{5, "C"},
		{6, "D"},
		{9, "D"},
		{10, "E"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, gradeLetter(c.points, true), "points %d", c.points)
	}
}

func TestGradeProteinSuppression(t *testing.T) {
	// 負分 ≥11 且蔬果分不足時蛋白質不計入正分
	bad := catalog.NutrientProfile{
		SugarsG:    f(40),   // 9
		SatfatG:    f(12),   // 10
		SodiumG:    f(0.05), // 50mg → 0
		EnergyKcal: f(100),  // 418 kJ → 1
		ProteinG:   f(20),   // 蛋白質滿分 5，但會被抑制
	}
	score := Grade(bad, false)
	assert.GreaterOrEqual(t, score.Breakdown.Negative, 11)
	assert.Equal(t, 5, score.Breakdown.Protein)
	assert.Equal(t, 0, score.Breakdown.Positive)
	assert.Equal(t, score.Breakdown.Negative, score.Points)
}

func TestGradeMissingFieldsTreatedAsZero(t *testing.T) {
	score := Grade(catalog.NutrientProfile{}, false)
	assert.Equal(t, 0, score.Points)
	assert.Equal(t, "B", score.Grade)
}

// 同樣輸入永遠得到同樣輸出
func TestGradeDeterministic(t *testing.T) {
	nut := catalog.NutrientProfile{
		SugarsG:    f(7.3),
		SodiumG:    f(0.25),
		SatfatG:    f(2.2),
		FiberG:     f(1.5),
		ProteinG:   f(4.0),
		EnergyKcal: f(210),
	}
	first := Grade(nut, false)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Grade(nut, false))
	}
}
