package state

import (
	"lifecalc/internal/analysis"
	"lifecalc/internal/calc"
	"lifecalc/internal/nav"
)

// Navigate moves to Page, optionally selecting Category.
type Navigate struct {
	Page     nav.Page
	Category string
}

func (u Navigate) apply(store *Store) bool {
	store.move(nav.NavigateTo{Page: u.Page, Category: u.Category})
	return true
}

// GoBack returns to the previous page.
type GoBack struct{}

func (GoBack) apply(store *Store) bool {
	store.move(nav.Back{})
	return true
}

// move applies a navigation action and drops state owned by the page being
// left. Any navigation invalidates the pending Analyze request.
func (s *Store) move(action nav.Action) {
	from := s.nav.Current
	s.nav = nav.Transition(s.nav, action)
	to := s.nav.Current

	s.pending = nil
	if nav.IsCategory(from) && to != from {
		s.fields = make(map[string]string)
	}
	if from == nav.PageResults && to != nav.PageResults {
		s.result = nil
	}
}

// SetField records the raw text typed into a form field.
type SetField struct {
	ID    string
	Value string
}

func (u SetField) apply(store *Store) bool {
	if u.ID == "" || !nav.IsCategory(store.nav.Current) {
		return false
	}
	store.fields[u.ID] = u.Value
	return true
}

// BeginAnalysis marks Request as in flight. It is ignored off an input page
// or while another request is pending.
type BeginAnalysis struct {
	Request analysis.Request
}

func (u BeginAnalysis) apply(store *Store) bool {
	if u.Request.Token == "" || store.pending != nil || !nav.IsCategory(store.nav.Current) {
		return false
	}
	req := u.Request
	store.pending = &req
	return true
}

// CompleteAnalysis delivers the result for Token. It only takes effect when
// Token is still the pending request, i.e. the user has not navigated away
// since pressing Analyze; the store then shows the results page.
type CompleteAnalysis struct {
	Token  string
	Result calc.Result
}

func (u CompleteAnalysis) apply(store *Store) bool {
	if store.pending == nil || store.pending.Token != u.Token || !nav.IsCategory(store.nav.Current) {
		return false
	}
	store.move(nav.NavigateTo{Page: nav.PageResults})
	res := u.Result
	store.result = cloneResult(&res)
	return true
}

// AbortAnalysis drops the pending request when Token still matches, leaving
// the user on the input page with the form intact.
type AbortAnalysis struct {
	Token string
}

func (u AbortAnalysis) apply(store *Store) bool {
	if store.pending == nil || store.pending.Token != u.Token {
		return false
	}
	store.pending = nil
	return true
}
