package nav

// State is the navigation state shared by every view.
type State struct {
	Current        Page
	Previous       Page
	ActiveCategory string
}

// Initial is the state at app start.
func Initial() State {
	return State{Current: PageSplash, Previous: PageSplash}
}

// Action is a user-triggered navigation request.
type Action interface {
	isAction()
}

// NavigateTo moves to Page. Category is only consulted for category pages.
type NavigateTo struct {
	Page     Page
	Category string
}

// Back returns to the page shown before the current one.
type Back struct{}

func (NavigateTo) isAction() {}
func (Back) isAction()       {}

// Transition applies a to s and returns the new state; s is not modified.
//
// Previous always becomes the old Current. ActiveCategory only changes when
// moving to a category page with a category supplied, or when it is still
// empty on arrival at a category page.
func Transition(s State, a Action) State {
	switch a := a.(type) {
	case NavigateTo:
		next := State{
			Current:        a.Page,
			Previous:       s.Current,
			ActiveCategory: s.ActiveCategory,
		}
		if IsCategory(a.Page) {
			switch {
			case a.Category != "":
				next.ActiveCategory = a.Category
			case next.ActiveCategory == "":
				next.ActiveCategory = string(a.Page)
			}
		}
		return next
	case Back:
		return Transition(s, NavigateTo{Page: s.Previous})
	default:
		return s
	}
}

// Valid reports whether s satisfies the category invariant: a category or
// results page always has an active category.
func (s State) Valid() bool {
	if IsCategory(s.Current) || s.Current == PageResults {
		return s.ActiveCategory != ""
	}
	return true
}
