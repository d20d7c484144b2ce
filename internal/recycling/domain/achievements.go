package domain

import "math"

// Achievement is a derived milestone computed from profile counters.
// Nothing here is persisted; progress is recomputed on every read.
type Achievement struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	Progress    float64 `json:"progress"` // percent, 0-100
}

type achievementDef struct {
	id          string
	title       string
	description string
	target      float64
	value       func(*UserProfile) float64
}

var achievementDefs = []achievementDef{
	{"first-steps", "First Steps", "Recycle your first electronic device", 1,
		func(p *UserProfile) float64 { return float64(p.RecycledDevices) }},
	{"novice-recycler", "Novice Recycler", "Recycle 5 devices", 5,
		func(p *UserProfile) float64 { return float64(p.RecycledDevices) }},
	{"recycling-enthusiast", "Recycling Enthusiast", "Recycle 10 devices", 10,
		func(p *UserProfile) float64 { return float64(p.RecycledDevices) }},
	{"ewaste-warrior", "E-Waste Warrior", "Recycle 25 devices", 25,
		func(p *UserProfile) float64 { return float64(p.RecycledDevices) }},
	{"gold-digger", "Gold Digger", "Recover a total of 1g of gold", 1,
		func(p *UserProfile) float64 { return p.MaterialsSaved.Gold }},
	{"copper-king", "Copper King", "Recover a total of 500g of copper", 500,
		func(p *UserProfile) float64 { return p.MaterialsSaved.Copper }},
	{"carbon-saver", "Carbon Saver", "Save 10kg of CO2 emissions", 10,
		func(p *UserProfile) float64 { return p.CO2Saved }},
}

// AchievementsFor derives the achievement list for a profile.
func AchievementsFor(p *UserProfile) []Achievement {
	out := make([]Achievement, 0, len(achievementDefs))
	for _, def := range achievementDefs {
		v := def.value(p)
		progress := math.Min(v/def.target, 1) * 100
		out = append(out, Achievement{
			ID:          def.id,
			Title:       def.title,
			Description: def.description,
			Completed:   v >= def.target,
			Progress:    progress,
		})
	}
	return out
}
