package margins

import "pavotes/internal/models"

// Tossup rating values shared by both sides.
const (
	partyCompetitive = "Competitive"
	partyDemocratic  = "Democratic"
	partyRepublican  = "Republican"
	tossupColor      = "#f7f7f7"
)

// Rate builds the full competitiveness rating for a signed margin:
// party-qualified category name, stable code, and map color.
func Rate(marginPct float64) models.Competitiveness {
	label := Categorize(marginPct)

	if label == CategoryTossup {
		return models.Competitiveness{
			Category: CategoryTossup,
			Party:    partyCompetitive,
			Code:     "TOSSUP",
			Color:    tossupColor,
		}
	}

	if marginPct > 0 {
		return models.Competitiveness{
			Category: label + " " + partyDemocratic,
			Party:    partyDemocratic,
			Code:     demCodes[label],
			Color:    demRamp[label],
		}
	}

	return models.Competitiveness{
		Category: label + " " + partyRepublican,
		Party:    partyRepublican,
		Code:     repCodes[label],
		Color:    repRamp[label],
	}
}
