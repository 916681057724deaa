package analyze

import "github.com/drift-docs/drift-cli/internal/state"

// Rename dampening: a near-identical rename is mostly churn, a heavily
// edited rename still carries real change.
const (
	renameSimilarityCutoff  = 95
	renameHighSimilarityMul = 0.3
	renameLowSimilarityMul  = 0.6
)

// ScoreMagnitude converts line-level diff statistics into a significance
// score in [0,1]. The base score is a step function of total changed lines,
// monotonic non-decreasing; renames are then dampened, never boosted.
func ScoreMagnitude(linesAdded, linesDeleted int, isRename bool, renameSimilarity int) float64 {
	total := linesAdded + linesDeleted

	var score float64
	switch {
	case total == 0:
		score = 0.0
	case total < 5:
		score = 0.2
	case total < 20:
		score = 0.4
	case total < 50:
		score = 0.6
	case total < 100:
		score = 0.8
	default:
		score = 1.0
	}

	if isRename {
		if renameSimilarity > renameSimilarityCutoff {
			score *= renameHighSimilarityMul
		} else {
			score *= renameLowSimilarityMul
		}
	}
	return score
}

// NewMagnitude builds a fully-populated Magnitude from diff statistics.
func NewMagnitude(linesAdded, linesDeleted int, isRename bool, renameSimilarity int) state.Magnitude {
	return state.Magnitude{
		LinesAdded:       linesAdded,
		LinesDeleted:     linesDeleted,
		TotalLines:       linesAdded + linesDeleted,
		IsRename:         isRename,
		RenameSimilarity: renameSimilarity,
		Score:            ScoreMagnitude(linesAdded, linesDeleted, isRename, renameSimilarity),
	}
}
