package roster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/fantasy-keepers/internal/model"
)

func TestParseBasicRoster(t *testing.T) {
	csv := "Team A,,Team B,,\nPlayer,$,Player,$\nAlice,10,Bob,20\n"

	snapshot, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []string{"Team A", "Team B"}, snapshot.Teams)
	assert.Equal(t, []model.Player{{Name: "Alice", LastYearCost: 10, ThisYearCost: 11}}, snapshot.Players["Team A"])
	assert.Equal(t, []model.Player{{Name: "Bob", LastYearCost: 20, ThisYearCost: 22}}, snapshot.Players["Team B"])
}

func TestParseNormalizesLastFirstNames(t *testing.T) {
	csv := "Team A,,\nPlayer,$\n\"Smith, John\",12\nCeeDee Lamb,40\n"

	snapshot, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, snapshot.Players["Team A"], 2)
	assert.Equal(t, "John Smith", snapshot.Players["Team A"][0].Name)
	assert.Equal(t, "CeeDee Lamb", snapshot.Players["Team A"][1].Name)
}

func TestParseIndependentRosterLengths(t *testing.T) {
	csv := strings.Join([]string{
		"Team A,,Team B,,Team C,",
		"Player,$,Player,$,Player,$",
		"A1,5,B1,6,C1,7",
		",,B2,8,C2,9",
		"A2,3,,,C3,1",
		"A3,2",
	}, "\n")

	snapshot, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)

	names := func(team string) []string {
		var out []string
		for _, p := range snapshot.Players[team] {
			out = append(out, p.Name)
		}
		return out
	}
	assert.Equal(t, []string{"A1", "A2", "A3"}, names("Team A"))
	assert.Equal(t, []string{"B1", "B2"}, names("Team B"))
	assert.Equal(t, []string{"C1", "C2", "C3"}, names("Team C"))
}

func TestParseSkipsHalfFilledPairs(t *testing.T) {
	csv := "Team A,,Team B,,\nPlayer,$,Player,$\nAlice,,Bob,20\n,10,Carl,4\n"

	snapshot, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Empty(t, snapshot.Players["Team A"])
	assert.Len(t, snapshot.Players["Team B"], 2)
}

func TestParseNonNumericCostDefaultsToZero(t *testing.T) {
	csv := "Team A,,\nPlayer,$\nAlice,abc\nBob,12x\nCarl,$7\n"

	snapshot, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)

	players := snapshot.Players["Team A"]
	require.Len(t, players, 3)
	assert.Equal(t, model.Player{Name: "Alice", LastYearCost: 0, ThisYearCost: 1}, players[0])
	assert.Equal(t, model.Player{Name: "Bob", LastYearCost: 12, ThisYearCost: 13}, players[1])
	assert.Equal(t, model.Player{Name: "Carl", LastYearCost: 0, ThisYearCost: 1}, players[2])
}

func TestParseSkipsSubHeaderUnconditionally(t *testing.T) {
	csv := "Team A,,\nNot,99\nAlice,10\n"

	snapshot, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, snapshot.Players["Team A"], 1)
	assert.Equal(t, "Alice", snapshot.Players["Team A"][0].Name)
}

func TestParseBlankSubHeaderRowKeepsFirstPlayer(t *testing.T) {
	csv := "Team A,,Team B,,\n\nAlice,10,Bob,20\nCarl,5,Dan,1\n"

	snapshot, err := Parse(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []model.Player{
		{Name: "Alice", LastYearCost: 10, ThisYearCost: 11},
		{Name: "Carl", LastYearCost: 5, ThisYearCost: 6},
	}, snapshot.Players["Team A"])
	assert.Equal(t, []model.Player{
		{Name: "Bob", LastYearCost: 20, ThisYearCost: 22},
		{Name: "Dan", LastYearCost: 1, ThisYearCost: 2},
	}, snapshot.Players["Team B"])
}

func TestParseLargeCostWithinBound(t *testing.T) {
	snapshot, err := Parse(strings.NewReader("Team A,,\nPlayer,$\nAlice,1000000\n"))
	require.NoError(t, err)
	assert.Equal(t, 1_000_000, snapshot.Players["Team A"][0].LastYearCost)
	assert.Equal(t, 1_100_000, snapshot.Players["Team A"][0].ThisYearCost)
}

func TestParseTeamsWithNoPlayers(t *testing.T) {
	snapshot, err := Parse(strings.NewReader("Team A,,Team B,,\nPlayer,$,Player,$\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Team A", "Team B"}, snapshot.Teams)
	assert.NotNil(t, snapshot.Players["Team A"])
	assert.Empty(t, snapshot.Players["Team A"])
}

func TestParseQuotedHeaderWithBOM(t *testing.T) {
	snapshot, err := Parse(strings.NewReader("\ufeff\"Team A\",,\"Team B\",\nPlayer,$,Player,$\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Team A", "Team B"}, snapshot.Teams)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"empty source", ""},
		{"no team columns", ",,,,\nPlayer,$\n"},
		{"duplicate team", "Team A,,Team A,,\nPlayer,$,Player,$\n"},
		{"cost too large", "Team A,,\nPlayer,$\nAlice,1000001\n"},
		{"cost overflows int", "Team A,,\nPlayer,$\nAlice,99999999999999999999999\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.csv))
			var perr *model.ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "John Smith", NormalizeName("Smith, John"))
	assert.Equal(t, "John Smith", NormalizeName("Smith,John"))
	assert.Equal(t, "Amon-Ra St. Brown", NormalizeName("St. Brown, Amon-Ra"))
	assert.Equal(t, "Justin Jefferson", NormalizeName("Justin Jefferson"))
	assert.Equal(t, "Smith", NormalizeName("Smith,"))
}

func TestParseCostErrorReportsLine(t *testing.T) {
	_, err := Parse(strings.NewReader("Team A,,Team B,,\nPlayer,$,Player,$\nAlice,10,Bob,20\nCarl,5,Dan,2000000\n"))

	var perr *model.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 4, perr.Line)
	assert.Contains(t, perr.Reason, "Team B")
}
