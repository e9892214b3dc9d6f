package entitlement

// Level is the ordered profile-completeness tier. It is monotonically
// non-decreasing over an institution's lifetime; no downgrade path
// exists anywhere in the system.
type Level string

const (
	LevelBasic    Level = "basic"
	LevelSilver   Level = "silver"
	LevelGold     Level = "gold"
	LevelPlatinum Level = "platinum"
)

var levelOrder = map[Level]int{
	LevelBasic:    0,
	LevelSilver:   1,
	LevelGold:     2,
	LevelPlatinum: 3,
}

// Rank returns the position of l in the tier order, or -1 for an
// unknown level.
func (l Level) Rank() int {
	r, ok := levelOrder[l]
	if !ok {
		return -1
	}
	return r
}

// AtLeast reports whether l sits at or above min in the tier order.
func (l Level) AtLeast(min Level) bool {
	return l.Rank() >= 0 && l.Rank() >= min.Rank()
}

// Next returns the tier directly above l, or l itself when already at
// the top (or unknown).
func (l Level) Next() Level {
	switch l {
	case LevelBasic:
		return LevelSilver
	case LevelSilver:
		return LevelGold
	case LevelGold:
		return LevelPlatinum
	}
	return l
}
