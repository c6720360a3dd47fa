// Package profile holds the static user record shown on the dashboard and
// profile screens. Nothing here is mutated at runtime.
package profile

// HistoryPoint is one month of life score history.
type HistoryPoint struct {
	Date  string `yaml:"date"`
	Score int    `yaml:"score"`
}

// UserData is the read-only profile record.
type UserData struct {
	Name        string         `yaml:"name"`
	DisplayName string         `yaml:"display_name"`
	Rank        string         `yaml:"rank"`
	LifeScore   int            `yaml:"life_score"`
	Points      int            `yaml:"points"`
	Streak      int            `yaml:"streak"`
	History     []HistoryPoint `yaml:"history"`
}

// Challenge is a habit goal with a completion percentage.
type Challenge struct {
	Title    string
	Progress int
	Reward   string
}

var defaultUser = &UserData{
	Name:        "Alex",
	DisplayName: "Alex Architect",
	Rank:        "Level 12 Life Architect",
	LifeScore:   72,
	Points:      1240,
	Streak:      12,
	History: []HistoryPoint{
		{Date: "Jan", Score: 65},
		{Date: "Feb", Score: 68},
		{Date: "Mar", Score: 72},
		{Date: "Apr", Score: 70},
		{Date: "May", Score: 75},
		{Date: "Jun", Score: 72},
	},
}

// Default returns the shared profile. Callers must treat it as read-only.
func Default() *UserData {
	return defaultUser
}

var challengeTitles = []string{
	"Walk 10k Steps",
	"Save ₹500 today",
	"Read for 30 mins",
	"No Sugar Day",
}

// Challenges returns the challenge list; the i-th entry is i*25% complete.
func Challenges() []Challenge {
	out := make([]Challenge, len(challengeTitles))
	for i, title := range challengeTitles {
		out[i] = Challenge{Title: title, Progress: i * 25}
	}
	return out
}

// ActiveChallenge is the challenge featured on the dashboard.
func ActiveChallenge() Challenge {
	return Challenge{Title: "Walk 10k Steps", Progress: 70, Reward: "+5 Score"}
}

// WeeklyTrend is the bar series drawn beside the dashboard life score.
func WeeklyTrend() []int {
	return []int{40, 60, 45, 70, 65, 80, 72}
}
