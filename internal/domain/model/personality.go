package model

// PersonalityType classifies a participant by personality score.
type PersonalityType int

// Personality types, ordered from lowest to highest score band.
const (
	Unknown PersonalityType = iota
	Thinker
	Balanced
	Leader
)

// Score thresholds for the personality bands.
const (
	LeaderMinScore   = 90
	BalancedMinScore = 70
	ThinkerMinScore  = 50
)

// PersonalityTypes lists every type in a stable order for reports.
var PersonalityTypes = []PersonalityType{Leader, Balanced, Thinker, Unknown} //nolint:gochecknoglobals // fixed enum order

// PersonalityTypeFor maps a 0..100 score onto its band.
func PersonalityTypeFor(score int) PersonalityType {
	switch {
	case score >= LeaderMinScore:
		return Leader
	case score >= BalancedMinScore:
		return Balanced
	case score >= ThinkerMinScore:
		return Thinker
	default:
		return Unknown
	}
}

func (t PersonalityType) String() string {
	switch t {
	case Leader:
		return "Leader"
	case Balanced:
		return "Balanced"
	case Thinker:
		return "Thinker"
	default:
		return "Unknown"
	}
}
