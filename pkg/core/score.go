// pkg/core/score.go
package core

// ScoreResult is the 0-100 route score with its four sub-scores.
// Aircraft keeps the unrounded value that feeds Total.
type ScoreResult struct {
	ETOPS           int
	Environmental   int
	Efficiency      int
	Aircraft        float64
	AircraftDisplay int
	Total           int
}

// DetailedScore layers the challenge distance bonus on top of a base score.
// The bonus is never added to Base.Total.
type DetailedScore struct {
	Base           ScoreResult
	DistanceBonus  int
	ChallengeTotal int
}

// Tier is a title rank, ordered from lowest to highest.
type Tier int

const (
	TierNeedsImprovement Tier = iota
	TierBeginner
	TierIntermediate
	TierExpert
	TierLegend
)

func (t Tier) String() string {
	switch t {
	case TierLegend:
		return "Legend"
	case TierExpert:
		return "Expert"
	case TierIntermediate:
		return "Intermediate"
	case TierBeginner:
		return "Beginner"
	default:
		return "Needs improvement"
	}
}

// MessageClass tells the presentation layer how to style a title message.
type MessageClass string

const (
	MessageSuccess MessageClass = "success"
	MessageWarning MessageClass = "warning"
	MessageError   MessageClass = "error"
)

// Band is an inclusive score range.
type Band struct {
	Min int
	Max int
}

// Contains reports whether score lies in the band.
func (b Band) Contains(score int) bool {
	return score >= b.Min && score <= b.Max
}

// TitleResult is the rank awarded for a total score.
type TitleResult struct {
	Tier         Tier
	Label        string
	Badge        string
	MessageClass MessageClass
	Message      string
	Band         Band
}
