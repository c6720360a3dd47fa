// Package nav models which screen is active and how user actions move
// between screens. It performs no I/O.
package nav

// Page names one screen of the app. Values outside the known set are
// representable and resolve to ViewNotFound.
type Page string

const (
	PageSplash     Page = "splash"
	PageHome       Page = "home"
	PageHealth     Page = "health"
	PageMoney      Page = "money"
	PageCareer     Page = "career"
	PageDaily      Page = "daily"
	PageResults    Page = "results"
	PageChallenges Page = "challenges"
	PageProfile    Page = "profile"
	PageCalculator Page = "calculator"
)

var pages = []Page{
	PageSplash, PageHome, PageHealth, PageMoney, PageCareer,
	PageDaily, PageResults, PageChallenges, PageProfile, PageCalculator,
}

// Pages lists every known page.
func Pages() []Page {
	out := make([]Page, len(pages))
	copy(out, pages)
	return out
}

// Categories lists the category input pages in dashboard order.
func Categories() []Page {
	return []Page{PageHealth, PageMoney, PageCareer, PageDaily}
}

// ParsePage reports whether name is a known page.
func ParsePage(name string) (Page, bool) {
	for _, p := range pages {
		if string(p) == name {
			return p, true
		}
	}
	return Page(name), false
}

// IsCategory reports whether p is one of the category input pages.
func IsCategory(p Page) bool {
	switch p {
	case PageHealth, PageMoney, PageCareer, PageDaily:
		return true
	}
	return false
}

// ShowsBottomNav reports whether the home/challenges/profile bar is drawn on p.
func ShowsBottomNav(p Page) bool {
	return p != PageSplash && p != PageResults && !IsCategory(p)
}

// BottomNav lists the bottom bar destinations in order.
func BottomNav() []Page {
	return []Page{PageHome, PageChallenges, PageProfile}
}

// View identifies the renderer used for a page.
type View int

const (
	ViewNotFound View = iota
	ViewSplash
	ViewDashboard
	ViewInput
	ViewResults
	ViewChallenges
	ViewProfile
	ViewCalculator
)

// Resolve maps a page onto its view. Unknown pages get ViewNotFound.
func Resolve(p Page) View {
	switch p {
	case PageSplash:
		return ViewSplash
	case PageHome:
		return ViewDashboard
	case PageHealth, PageMoney, PageCareer, PageDaily:
		return ViewInput
	case PageResults:
		return ViewResults
	case PageChallenges:
		return ViewChallenges
	case PageProfile:
		return ViewProfile
	case PageCalculator:
		return ViewCalculator
	default:
		return ViewNotFound
	}
}
