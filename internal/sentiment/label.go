package sentiment

import "ReviewMiner/internal/domain"

// LabelFor derives the overall label from the ordinal sentiment score.
// This is the only derivation path for labels in the system.
func LabelFor(score int) domain.Label {
	switch score {
	case 4, 5:
		return domain.LabelPositive
	case 3:
		return domain.LabelNeutral
	case 1, 2:
		return domain.LabelNegative
	default:
		return domain.LabelUnset
	}
}
