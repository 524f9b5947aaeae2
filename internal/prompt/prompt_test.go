package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendy/internal/core"
)

func assertContract(t *testing.T, p string) {
	t.Helper()
	assert.Contains(t, p, "social media trends expert in Riyadh")
	assert.Contains(t, p, "Only return JSON in this exact format")
	assert.Contains(t, p, "Output JSON only.")
	assert.Contains(t, p, "Return exactly 3 items.")
	assert.Contains(t, p, `"cafe", "restaurant", "park", "report"`)
	assert.Contains(t, p, "**Arabic**")
	assert.Contains(t, p, "3-5 sentences")
	assert.Contains(t, p, "DO NOT include any text before or after the JSON block.")
	assert.Contains(t, p, "DO NOT wrap the JSON in markdown code fences.")

	cafe := strings.Index(p, `"cafe":`)
	restaurant := strings.Index(p, `"restaurant":`)
	park := strings.Index(p, `"park":`)
	report := strings.Index(p, `"report":`)
	assert.True(t, cafe < restaurant && restaurant < park && park < report, "schema key order")
}

func TestGroundedPromptWithGaps(t *testing.T) {
	cs := core.CandidateSet{
		core.CategoryCafe:       {"A"},
		core.CategoryRestaurant: {},
		core.CategoryPark:       {"C"},
	}

	p, err := Build(cs, "Riyadh", "ar")
	require.NoError(t, err)

	assert.Contains(t, p, "A")
	assert.Contains(t, p, "C")
	assert.Contains(t, p, "   - Cafes: A\n")
	assert.Contains(t, p, "   - Restaurants: \n")
	assert.Contains(t, p, "   - Parks: C\n")
	assert.Contains(t, p, "found by live web search")
	assertContract(t, p)
}

func TestGroundedPromptEmbedsAllNames(t *testing.T) {
	cs := core.CandidateSet{
		core.CategoryCafe:       {"Overdose Coffee", "Camel Step", "Brew92"},
		core.CategoryRestaurant: {"Takya", "Lusin", "Myazu"},
		core.CategoryPark:       {"Wadi Hanifa", "King Abdullah Park", "Salam Park"},
	}

	p, err := GroundedBuilder{}.Build(cs, "Riyadh", "ar")
	require.NoError(t, err)

	assert.Contains(t, p, "Cafes: Overdose Coffee, Camel Step, Brew92")
	assert.Contains(t, p, "Restaurants: Takya, Lusin, Myazu")
	assert.Contains(t, p, "Parks: Wadi Hanifa, King Abdullah Park, Salam Park")
}

func TestUngroundedPrompt(t *testing.T) {
	p, err := Build(nil, "Riyadh", "ar")
	require.NoError(t, err)

	assert.NotContains(t, p, "live web search")
	assert.Contains(t, p, "currently trending on social media in Riyadh")
	assertContract(t, p)
}

func TestSelect(t *testing.T) {
	assert.Equal(t, "ungrounded", Select(nil).Name())
	assert.Equal(t, "ungrounded", Select(core.CandidateSet{core.CategoryCafe: {}}).Name())
	assert.Equal(t, "grounded", Select(core.CandidateSet{core.CategoryPark: {"Salam Park"}}).Name())
}

func TestUnsupportedLanguage(t *testing.T) {
	_, err := GroundedBuilder{}.Build(nil, "Riyadh", "en")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)

	_, err = UngroundedBuilder{}.Build(nil, "Riyadh", "")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestBuildIsDeterministic(t *testing.T) {
	cs := core.CandidateSet{core.CategoryCafe: {"Brew92"}}
	first, err := Build(cs, "Riyadh", "ar")
	require.NoError(t, err)
	second, err := Build(cs, "Riyadh", "ar")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
