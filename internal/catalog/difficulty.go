package catalog

// Difficulty is the ordinal difficulty of an exercise.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties returns all difficulties in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	return d.Rank() >= 0
}

// Rank returns the ordinal position of d, or -1 when unknown.
func (d Difficulty) Rank() int {
	switch d {
	case Easy:
		return 0
	case Medium:
		return 1
	case Hard:
		return 2
	default:
		return -1
	}
}

// TargetSkill is the skill level (0-10) an item of this difficulty is
// aimed at.
func (d Difficulty) TargetSkill() float64 {
	switch d {
	case Easy:
		return 3
	case Medium:
		return 6
	case Hard:
		return 9
	default:
		return 5
	}
}

// Multiplier scales skill adjustments made after an attempt.
func (d Difficulty) Multiplier() float64 {
	switch d {
	case Easy:
		return 0.8
	case Hard:
		return 1.2
	default:
		return 1.0
	}
}

// DisplayName returns a capitalized label for d.
func (d Difficulty) DisplayName() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return string(d)
	}
}
