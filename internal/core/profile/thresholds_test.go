package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetsForDefaults(t *testing.T) {
	targets := TargetsFor(&HealthProfile{})
	assert.Equal(t, 8.0, targets.SugarGoodG)
	assert.Equal(t, 12.0, targets.SugarHighG)
	assert.Equal(t, 400.0, targets.SodiumGoodMG)
	assert.Equal(t, 600.0, targets.SodiumHighMG)
	assert.Equal(t, 3.0, targets.SatfatGoodG)
	assert.Equal(t, 5.0, targets.SatfatHighG)
	assert.Equal(t, 6.0, targets.ProteinMinG)
	assert.Equal(t, 3.0, targets.FiberMinG)
	assert.Equal(t, 4, targets.AdditivesMax)
}

func TestTargetsForNilProfile(t *testing.T) {
	// nil 檔案等同空檔案，回預設門檻
	assert.Equal(t, TargetsFor(&HealthProfile{}), TargetsFor(nil))
}

func TestTargetsForDiabetes(t *testing.T) {
	p := &HealthProfile{Conditions: Conditions{Selected: []string{"Tiểu đường"}}}
	targets := TargetsFor(p)
	assert.Equal(t, 5.0, targets.SugarGoodG)
	// 其他門檻維持預設
	assert.Equal(t, 400.0, targets.SodiumGoodMG)
}

func TestTargetsForHypertension(t *testing.T) {
	p := &HealthProfile{Conditions: Conditions{Selected: []string{"hypertension"}}}
	assert.Equal(t, 200.0, TargetsFor(p).SodiumGoodMG)
}

func TestTargetsForHeart(t *testing.T) {
	p := &HealthProfile{Conditions: Conditions{Other: StringList{"mỡ máu cao"}}}
	targets := TargetsFor(p)
	assert.Equal(t, 2.0, targets.SatfatGoodG)
	assert.Equal(t, 3.5, targets.SatfatHighG)
}

func TestTargetsForMuscleGain(t *testing.T) {
	p := &HealthProfile{Goals: Goals{Selected: []string{"tăng cơ"}}}
	assert.Equal(t, 10.0, TargetsFor(p).ProteinMinG)
}

func TestTargetsForDigestion(t *testing.T) {
	p := &HealthProfile{Goals: Goals{Note: "cải thiện tiêu hoá"}}
	targets := TargetsFor(p)
	assert.Equal(t, 5.0, targets.FiberMinG)
	assert.Equal(t, 2, targets.AdditivesMax)
}

// 多重狀況各自收緊，互不衝突
func TestTargetsForComposition(t *testing.T) {
	p := &HealthProfile{
		Conditions: Conditions{Selected: []string{"diabetes", "hypertension"}},
		Goals:      Goals{Selected: []string{"giảm cân"}},
	}
	targets := TargetsFor(p)
	assert.Equal(t, 5.0, targets.SugarGoodG)
	assert.Equal(t, 200.0, targets.SodiumGoodMG)
	assert.Equal(t, 5.0, targets.FiberMinG)
}

func TestProfileText(t *testing.T) {
	p := &HealthProfile{
		Conditions: Conditions{Selected: []string{"Diabetes"}, Other: StringList{"IBS"}},
		Goals:      Goals{Selected: []string{"Weight Loss"}, Note: "ăn ít đường"},
	}
	text := p.Text()
	assert.Contains(t, text, "diabetes")
	assert.Contains(t, text, "ibs")
	assert.Contains(t, text, "weight loss")
	assert.Contains(t, text, "ăn ít đường")
}

func TestGoalsText(t *testing.T) {
	p := &HealthProfile{Goals: Goals{Selected: []string{"tăng cơ", "  "}, Note: "thêm protein"}}
	assert.Equal(t, "tăng cơ, thêm protein", p.GoalsText())
	assert.Equal(t, "", (&HealthProfile{}).GoalsText())
}

func TestAllergySet(t *testing.T) {
	p := &HealthProfile{Allergies: StringList{" Milk ", "GLUTEN", ""}}
	set := p.AllergySet()
	assert.Len(t, set, 2)
	assert.Contains(t, set, "milk")
	assert.Contains(t, set, "gluten")
}

func TestStringListAcceptsBothShapes(t *testing.T) {
	var p HealthProfile
	require.NoError(t, json.Unmarshal([]byte(`{"allergies": ["milk", "egg"]}`), &p))
	assert.Equal(t, StringList{"milk", "egg"}, p.Allergies)

	p = HealthProfile{}
	require.NoError(t, json.Unmarshal([]byte(`{"allergies": "milk"}`), &p))
	assert.Equal(t, StringList{"milk"}, p.Allergies)

	p = HealthProfile{}
	require.NoError(t, json.Unmarshal([]byte(`{"allergies": 42}`), &p))
	assert.Empty(t, p.Allergies)
}
