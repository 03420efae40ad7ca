package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterState_Defaults(t *testing.T) {
	state := NewFilterState()

	assert.True(t, state.IsSelected(KeywordAll))
	assert.False(t, state.HasKeywordFilter())
	assert.Empty(t, state.ActiveKeywords())
	assert.Equal(t, PriceAll, state.Price)
	assert.Equal(t, SortPopular, state.Sort)
}

func TestFilterState_ToggleSpecificRemovesAll(t *testing.T) {
	state := NewFilterState()
	state.ToggleKeyword("코드 생성")

	assert.False(t, state.IsSelected(KeywordAll))
	assert.True(t, state.IsSelected("코드 생성"))
	require.Equal(t, []string{"코드 생성"}, state.ActiveKeywords())
}

func TestFilterState_ToggleLastKeywordRevertsToAll(t *testing.T) {
	state := NewFilterState()
	state.ToggleKeyword("이미지 생성")
	state.ToggleKeyword("이미지 생성")

	assert.True(t, state.IsSelected(KeywordAll))
	assert.False(t, state.HasKeywordFilter())
	assert.Len(t, state.Keywords(), 1)
}

func TestFilterState_SelectAllClearsOthers(t *testing.T) {
	state := NewFilterState()
	state.ToggleKeyword("a")
	state.ToggleKeyword("b")
	require.Equal(t, []string{"a", "b"}, state.ActiveKeywords())

	state.ToggleKeyword(KeywordAll)

	assert.Equal(t, map[string]struct{}{KeywordAll: {}}, state.Keywords())
}

func TestFilterState_NeverEmpty(t *testing.T) {
	var state FilterState
	assert.True(t, state.IsSelected(KeywordAll))
	assert.Len(t, state.Keywords(), 1)

	state.ToggleKeyword("x")
	state.ToggleKeyword("x")
	assert.Len(t, state.Keywords(), 1)
	assert.True(t, state.IsSelected(KeywordAll))
}

func TestFilterState_SetKeywords(t *testing.T) {
	state := NewFilterState()
	state.SetKeywords([]string{" b ", "a", KeywordAll, "", "a"})
	assert.Equal(t, []string{"a", "b"}, state.ActiveKeywords())

	state.SetKeywords(nil)
	assert.True(t, state.IsSelected(KeywordAll))
}

func TestFilterState_CloneIsIndependent(t *testing.T) {
	state := NewFilterState()
	state.ToggleKeyword("a")
	clone := state.Clone()

	state.ToggleKeyword("b")

	assert.Equal(t, []string{"a"}, clone.ActiveKeywords())
	assert.Equal(t, []string{"a", "b"}, state.ActiveKeywords())
}

func TestParsePriceFilter(t *testing.T) {
	got, err := ParsePriceFilter("")
	require.NoError(t, err)
	assert.Equal(t, PriceAll, got)

	got, err = ParsePriceFilter(" Freemium ")
	require.NoError(t, err)
	assert.Equal(t, PriceFreemium, got)

	_, err = ParsePriceFilter("cheap")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseSortType(t *testing.T) {
	got, err := ParseSortType("NEWEST")
	require.NoError(t, err)
	assert.Equal(t, SortNewest, got)

	got, err = ParseSortType("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSort, got)

	_, err = ParseSortType("random")
	require.Error(t, err)
	code, ok := CodeFrom(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidArgument, code)
}

func TestParsePricingTier(t *testing.T) {
	assert.Equal(t, PricingPaid, ParsePricingTier("PAID"))
	assert.Equal(t, PricingTier(""), ParsePricingTier("subscription"))
	assert.True(t, PriceAll.Matches(""))
	assert.False(t, PriceFree.Matches(""))
}
