package models

// Badge is a recognition category from the catalog. Badges are seeded
// once and never mutated at runtime.
type Badge struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// DefaultBadges is the catalog seeded into an empty badges table.
var DefaultBadges = []Badge{
	{ID: "team-player", Name: "Team Player", Icon: "🤝", Color: "#3B82F6", Description: "Always there for the team"},
	{ID: "innovator", Name: "Innovator", Icon: "💡", Color: "#F59E0B", Description: "Brings fresh ideas to the table"},
	{ID: "problem-solver", Name: "Problem Solver", Icon: "🧩", Color: "#10B981", Description: "Untangles the hardest knots"},
	{ID: "culture-champion", Name: "Culture Champion", Icon: "🌟", Color: "#8B5CF6", Description: "Makes this a great place to work"},
	{ID: "customer-hero", Name: "Customer Hero", Icon: "🦸", Color: "#EF4444", Description: "Goes the extra mile for customers"},
}
