package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketOf(t *testing.T) {
	cases := []struct {
		category string
		want     Bucket
	}{
		{"beverage", BucketBeverage},
		{"tea", BucketBeverage},
		{"coffee", BucketBeverage},
		{"water", BucketBeverage},
		{"snack", BucketSnack},
		{"biscuit", BucketSnack},
		{"cereal", BucketSnack},
		{"noodle/dumpling", BucketNoodle},
		{"vermicelli", BucketNoodle},
		{"milk", BucketMilk},
		{"oil", BucketOil},
		{"misc", BucketMisc},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, BucketOf(c.category), "category %q", c.category)
	}
}

func TestBucketOfUnknownFallsBackToMisc(t *testing.T) {
	assert.Equal(t, BucketMisc, BucketOf("chocolate"))
	assert.Equal(t, BucketMisc, BucketOf(""))
	assert.Equal(t, BucketMisc, BucketOf("   "))
}

func TestBucketOfNormalizesInput(t *testing.T) {
	assert.Equal(t, BucketBeverage, BucketOf("  Tea "))
	assert.Equal(t, BucketSnack, BucketOf("SNACK"))
}

// yogurt 同時出現在 beverage 與 milk 的詞彙表，比對順序決定歸屬
func TestBucketOfYogurtIsDeterministic(t *testing.T) {
	assert.Equal(t, BucketBeverage, BucketOf("yogurt"))
}

func TestSameBucket(t *testing.T) {
	assert.True(t, SameBucket("tea", "coffee"))
	assert.True(t, SameBucket("chocolate", "candy")) // 都落在 misc
	assert.False(t, SameBucket("tea", "snack"))
}

func TestGuessCategory(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"trà ô long đóng chai", "tea"},
		{"cà phê sữa đá", "coffee"},
		{"sữa tươi tiệt trùng", "milk"},
		{"bánh quy bơ", "snack"},
		{"mì ăn liền", "noodle/dumpling"},
		{"dầu olive nguyên chất", "oil"},
		{"nước mắm truyền thống", "condiment"},
		{"instant noodle cup", "noodle/dumpling"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, GuessCategory(c.text), "text %q", c.text)
	}
}

func TestGuessCategoryUnknownFallsBackToMisc(t *testing.T) {
	assert.Equal(t, "misc", GuessCategory("something entirely different"))
	assert.Equal(t, "misc", GuessCategory(""))
}

// 關鍵字表順序固定：同時命中多個類別時取第一個
func TestGuessCategoryFirstMatchWins(t *testing.T) {
	// "trà sữa" 同時含 tea 與 milk 關鍵字
	assert.Equal(t, "tea", GuessCategory("trà sữa trân châu"))
}
