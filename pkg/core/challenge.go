// pkg/core/challenge.go
package core

// Difficulty selects the challenge route generation band.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty validates a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", NewInvalidInput("difficulty", "unknown difficulty %q", s)
	}
}

// RouteDescriptor is one aircraft-independent entry of a challenge.
type RouteDescriptor struct {
	Number     int
	Departure  string
	Arrival    string
	DistanceKm float64
	Passengers int
	Completed  bool
	Score      int
}
