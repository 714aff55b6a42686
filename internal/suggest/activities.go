package suggest

import "math/rand"

// Activity is a canned suggestion that can be turned into a task
type Activity struct {
	Text string `json:"activity"`
	Type string `json:"type"`
}

var activities = []Activity{
	{Text: "Start a daily meditation practice", Type: "wellness"},
	{Text: "Create a weekly meal plan", Type: "planning"},
	{Text: "Organize your digital files", Type: "productivity"},
	{Text: "Take a 30-minute walk", Type: "health"},
	{Text: "Learn a new programming concept", Type: "education"},
	{Text: "Write in a gratitude journal", Type: "mindfulness"},
	{Text: "Clean and organize your workspace", Type: "organization"},
	{Text: "Practice a new language for 20 minutes", Type: "learning"},
	{Text: "Do a 15-minute workout", Type: "fitness"},
	{Text: "Read a chapter of a book", Type: "personal development"},
}

// Activities returns a copy of the activity table
func Activities() []Activity {
	result := make([]Activity, len(activities))
	copy(result, activities)
	return result
}

// RandomActivity picks one activity. A nil source uses the global generator.
func RandomActivity(r *rand.Rand) Activity {
	if r == nil {
		return activities[rand.Intn(len(activities))]
	}
	return activities[r.Intn(len(activities))]
}
