package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstringMatcher(t *testing.T) {
	m := SubstringMatcher{}

	assert.True(t, m.Matches("en:milk", "milk"))
	assert.True(t, m.Matches("Milk", "milk"))
	assert.True(t, m.Matches("wheat-gluten", "gluten")) // 後綴命中
	assert.True(t, m.Matches("peanuts", "peanut"))

	assert.False(t, m.Matches("en:soybeans", "milk"))
	assert.False(t, m.Matches("", "milk"))
	assert.False(t, m.Matches("en:milk", ""))
	assert.False(t, m.Matches("   ", "milk"))
}

func TestHasAllergen(t *testing.T) {
	m := SubstringMatcher{}
	allergies := map[string]struct{}{"milk": {}, "gluten": {}}

	assert.True(t, hasAllergen(m, []string{"en:soybeans", "en:milk"}, allergies))
	assert.False(t, hasAllergen(m, []string{"en:soybeans"}, allergies))
	assert.False(t, hasAllergen(m, nil, allergies))
	assert.False(t, hasAllergen(m, []string{"en:milk"}, nil))
}
