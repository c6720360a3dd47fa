package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTracksPrevious(t *testing.T) {
	s := Initial()
	require.Equal(t, PageSplash, s.Current)

	s = Transition(s, NavigateTo{Page: PageHome})
	assert.Equal(t, PageHome, s.Current)
	assert.Equal(t, PageSplash, s.Previous)

	s = Transition(s, NavigateTo{Page: PageProfile})
	assert.Equal(t, PageProfile, s.Current)
	assert.Equal(t, PageHome, s.Previous)
}

func TestBackRestoresHomeAndKeepsCategory(t *testing.T) {
	s := Transition(Initial(), NavigateTo{Page: PageHome})
	s = Transition(s, NavigateTo{Page: PageHealth, Category: "health"})
	require.Equal(t, "health", s.ActiveCategory)

	s = Transition(s, Back{})
	assert.Equal(t, PageHome, s.Current)
	assert.Equal(t, PageHealth, s.Previous)
	assert.Equal(t, "health", s.ActiveCategory, "back leaves the last category in place")
}

func TestBackTwiceTogglesBetweenPages(t *testing.T) {
	s := Transition(Initial(), NavigateTo{Page: PageHome})
	s = Transition(s, NavigateTo{Page: PageCalculator})
	s = Transition(s, Back{})
	s = Transition(s, Back{})
	assert.Equal(t, PageCalculator, s.Current)
}

func TestCategoryOnlySetForCategoryPages(t *testing.T) {
	s := Transition(Initial(), NavigateTo{Page: PageMoney, Category: "money"})
	s = Transition(s, NavigateTo{Page: PageProfile, Category: "health"})
	assert.Equal(t, "money", s.ActiveCategory)

	s = Transition(s, NavigateTo{Page: PageCareer})
	assert.Equal(t, "money", s.ActiveCategory, "unsupplied category is left unchanged")
}

func TestCategoryDefaultsToPageWhenUnset(t *testing.T) {
	s := Transition(Initial(), NavigateTo{Page: PageDaily})
	assert.Equal(t, "daily", s.ActiveCategory)
	assert.True(t, s.Valid())
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	s := Transition(Initial(), NavigateTo{Page: PageHome})
	before := s
	_ = Transition(s, NavigateTo{Page: PageHealth, Category: "health"})
	assert.Equal(t, before, s)
}

func TestUnknownPageResolvesToNotFound(t *testing.T) {
	s := Transition(Initial(), NavigateTo{Page: Page("settings")})
	assert.Equal(t, Page("settings"), s.Current)
	assert.Equal(t, ViewNotFound, Resolve(s.Current))

	_, ok := ParsePage("settings")
	assert.False(t, ok)
	p, ok := ParsePage("calculator")
	assert.True(t, ok)
	assert.Equal(t, PageCalculator, p)
}

func TestResolveKnownPages(t *testing.T) {
	for _, p := range Pages() {
		assert.NotEqual(t, ViewNotFound, Resolve(p), "page %s", p)
	}
	for _, p := range Categories() {
		assert.Equal(t, ViewInput, Resolve(p))
		assert.False(t, ShowsBottomNav(p))
	}
	assert.False(t, ShowsBottomNav(PageSplash))
	assert.False(t, ShowsBottomNav(PageResults))
	assert.True(t, ShowsBottomNav(PageHome))
	assert.True(t, ShowsBottomNav(PageCalculator))
}

func TestValidInvariant(t *testing.T) {
	assert.False(t, State{Current: PageResults}.Valid())
	assert.True(t, State{Current: PageResults, ActiveCategory: "money"}.Valid())
	assert.True(t, State{Current: PageHome}.Valid())
}
