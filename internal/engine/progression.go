package engine

import "github.com/julianstephens/habitkit/internal/models"

const (
	// BaseCompletionXP is awarded for every completed day.
	BaseCompletionXP = 10
	// StreakXPFactor scales the per-day streak bonus.
	StreakXPFactor = 2
	// UncompletionPenalty is deducted when a day is un-logged.
	UncompletionPenalty = 10

	// QualityBonusExcellent and QualityBonusGood are added on top of the base
	// gain; fair and poor completions earn no bonus.
	QualityBonusExcellent = 5
	QualityBonusGood      = 2
)

// LevelThreshold returns the XP required to advance past the given level.
func LevelThreshold(level int) int {
	return level * 100
}

// ApplyProgression derives new XP and level from an edit and the freshly
// computed streak. XP never goes negative and levels are never revoked, even
// when XP is later spent down by un-completions.
func ApplyProgression(xp, level, streak int, edit models.LogEdit) (int, int) {
	if edit.Completed {
		gain := BaseCompletionXP + streak*StreakXPFactor
		switch edit.Quality {
		case models.QualityExcellent:
			gain += QualityBonusExcellent
		case models.QualityGood:
			gain += QualityBonusGood
		}
		xp += gain
	} else {
		xp -= UncompletionPenalty
		if xp < 0 {
			xp = 0
		}
	}

	for xp >= LevelThreshold(level) {
		xp -= LevelThreshold(level)
		level++
	}

	return xp, level
}
