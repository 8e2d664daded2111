package report

import (
	"fmt"
	"strconv"
	"strings"

	"pavotes/internal/findings"
	"pavotes/internal/models"
)

// Summary renders the run accumulator as an aligned table so non-fatal
// exclusions are visible at the end of every run.
func Summary(sum models.RunSummary) string {
	rows := [][]string{
		{"Files processed", strconv.Itoa(sum.FilesProcessed)},
		{"Rows read", strconv.Itoa(sum.RowsRead)},
		{"Rows kept", strconv.Itoa(sum.RowsKept)},
		{"Rows filtered (unselected office)", strconv.Itoa(sum.RowsFiltered)},
		{"Malformed rows dropped", strconv.Itoa(sum.MalformedRows)},
		{"Unknown-office rows dropped", strconv.Itoa(sum.UnknownOffices)},
		{"Unknown-county rows dropped", strconv.Itoa(sum.UnknownCounties)},
		{"Zero-vote contests excluded", strconv.Itoa(sum.ZeroVoteContests)},
		{"Contests emitted", strconv.Itoa(sum.ContestsEmitted)},
	}

	return Table([]string{"Run summary", "Count"}, rows)
}

// Findings renders the full research report for one contest category.
func Findings(dataset *models.Dataset, category string, topSwings int) string {
	analyzer := findings.New(dataset)

	var b strings.Builder

	fmt.Fprintf(&b, "# %s — %s\n\n", dataset.Metadata.Title, category)

	b.WriteString("## Statewide results\n\n")
	b.WriteString(statewideTable(analyzer.StatewideTrend(category)))
	b.WriteString("\n## Flipped counties\n\n")
	b.WriteString(flipsTable(analyzer.FlippedCounties(category)))
	b.WriteString("\n## Biggest swings\n\n")
	b.WriteString(swingsTable(analyzer.BiggestSwings(category, topSwings)))
	b.WriteString("\n## Bellwether counties\n\n")
	b.WriteString(bellwethersTable(analyzer.Bellwethers(category), 10))

	return b.String()
}

func statewideTable(trend []models.StateResult) string {
	rows := make([][]string, 0, len(trend))

	for _, state := range trend {
		rows = append(rows, []string{
			state.Year,
			state.DemCandidate,
			state.RepCandidate,
			formatVotes(state.DemVotes),
			formatVotes(state.RepVotes),
			formatMargin(state.MarginPct),
			state.Winner,
			state.Competitiveness.Category,
		})
	}

	return Table([]string{"Year", "Democrat", "Republican", "Dem votes", "Rep votes", "Margin", "Winner", "Rating"}, rows)
}

func flipsTable(flips []findings.Flip) string {
	if len(flips) == 0 {
		return "No counties flipped over the available elections.\n"
	}

	rows := make([][]string, 0, len(flips))

	for _, flip := range flips {
		rows = append(rows, []string{
			flip.County,
			fmt.Sprintf("%s (%d)", flip.FromParty, flip.EarliestYear),
			fmt.Sprintf("%s (%d)", flip.ToParty, flip.LatestYear),
			formatMargin(flip.EarliestMargin),
			formatMargin(flip.LatestMargin),
			formatMargin(flip.Swing),
		})
	}

	return Table([]string{"County", "From", "To", "First margin", "Last margin", "Swing"}, rows)
}

func swingsTable(swings []findings.Swing) string {
	rows := make([][]string, 0, len(swings))

	for _, swing := range swings {
		rows = append(rows, []string{
			swing.County,
			strconv.Itoa(swing.First.Year),
			formatMargin(swing.First.MarginPct),
			strconv.Itoa(swing.Last.Year),
			formatMargin(swing.Last.MarginPct),
			formatMargin(swing.TotalSwing),
		})
	}

	return Table([]string{"County", "First year", "First margin", "Last year", "Last margin", "Swing"}, rows)
}

func bellwethersTable(ranked []findings.Bellwether, topN int) string {
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}

	rows := make([][]string, 0, len(ranked))

	for _, b := range ranked {
		rows = append(rows, []string{
			b.County,
			fmt.Sprintf("%d/%d", b.Matches, b.Elections),
		})
	}

	return Table([]string{"County", "Matched statewide winner"}, rows)
}

// formatMargin renders a signed margin with the conventional D+/R+ prefix.
func formatMargin(marginPct float64) string {
	switch {
	case marginPct > 0:
		return fmt.Sprintf("D+%.2f", marginPct)
	case marginPct < 0:
		return fmt.Sprintf("R+%.2f", -marginPct)
	default:
		return "EVEN"
	}
}

func formatVotes(votes int) string {
	s := strconv.Itoa(votes)

	var b strings.Builder

	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteString(",")
		}

		b.WriteRune(r)
	}

	return b.String()
}
