package engine

import (
	"testing"

	"github.com/julianstephens/habitkit/internal/models"
)

func TestApplyProgression(t *testing.T) {
	tests := []struct {
		name      string
		xp        int
		level     int
		streak    int
		edit      models.LogEdit
		wantXP    int
		wantLevel int
	}{
		{
			name:      "first completion, no quality",
			xp:        0,
			level:     1,
			streak:    1,
			edit:      models.LogEdit{Completed: true},
			wantXP:    12, // 10 + 1*2
			wantLevel: 1,
		},
		{
			name:      "tenth consecutive day with excellent quality",
			xp:        0,
			level:     2,
			streak:    10,
			edit:      models.LogEdit{Completed: true, Quality: models.QualityExcellent},
			wantXP:    35, // 10 + 10*2 + 5
			wantLevel: 2,
		},
		{
			name:      "good quality bonus",
			xp:        0,
			level:     1,
			streak:    3,
			edit:      models.LogEdit{Completed: true, Quality: models.QualityGood},
			wantXP:    18, // 10 + 3*2 + 2
			wantLevel: 1,
		},
		{
			name:      "fair quality earns no bonus",
			xp:        0,
			level:     1,
			streak:    3,
			edit:      models.LogEdit{Completed: true, Quality: models.QualityFair},
			wantXP:    16,
			wantLevel: 1,
		},
		{
			name:      "level-up consumes level*100",
			xp:        95,
			level:     1,
			streak:    1,
			edit:      models.LogEdit{Completed: true},
			wantXP:    7, // 95+12 = 107, -100
			wantLevel: 2,
		},
		{
			name:      "un-completion deducts 10",
			xp:        42,
			level:     3,
			streak:    0,
			edit:      models.LogEdit{Completed: false},
			wantXP:    32,
			wantLevel: 3,
		},
		{
			name:      "un-completion clamps at zero",
			xp:        4,
			level:     2,
			streak:    0,
			edit:      models.LogEdit{Completed: false},
			wantXP:    0,
			wantLevel: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xp, level := ApplyProgression(tt.xp, tt.level, tt.streak, tt.edit)
			if xp != tt.wantXP {
				t.Errorf("xp = %d, want %d", xp, tt.wantXP)
			}
			if level != tt.wantLevel {
				t.Errorf("level = %d, want %d", level, tt.wantLevel)
			}
		})
	}
}

func TestApplyProgressionMultiLevelUp(t *testing.T) {
	// A large enough balance crosses several thresholds at once:
	// 290+12=302, level 1 consumes 100 -> 202, level 2 consumes 200 -> 2
	xp, level := ApplyProgression(290, 1, 1, models.LogEdit{Completed: true})
	if level != 3 {
		t.Errorf("level = %d, want 3", level)
	}
	if xp != 2 {
		t.Errorf("xp = %d, want 2", xp)
	}
}

func TestProgressionInvariants(t *testing.T) {
	// XP stays non-negative and level never decreases over an arbitrary
	// mixed sequence of completions and un-completions.
	edits := []models.LogEdit{
		{Completed: true, Quality: models.QualityExcellent},
		{Completed: false},
		{Completed: false},
		{Completed: false},
		{Completed: true},
		{Completed: true, Quality: models.QualityGood},
		{Completed: false},
	}

	xp, level := 0, 1
	streak := 0
	for i, edit := range edits {
		if edit.Completed {
			streak++
		} else {
			streak = 0
		}
		prevLevel := level
		xp, level = ApplyProgression(xp, level, streak, edit)
		if xp < 0 {
			t.Fatalf("edit %d: xp = %d, want >= 0", i, xp)
		}
		if level < prevLevel {
			t.Fatalf("edit %d: level decreased from %d to %d", i, prevLevel, level)
		}
	}
}
