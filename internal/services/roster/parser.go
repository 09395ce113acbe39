package roster

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mcoot/fantasy-keepers/internal/model"
)

// Each team owns a (name, cost) column pair starting at column 2*i.
// The first row holds team names and the second is a "Player,$" sub-header.
const columnsPerTeam = 2

// Spreadsheet exports sometimes prefix the file with a byte order mark
const utf8BOM = "\ufeff"

type teamColumn struct {
	name string
	col  int
}

// Parse reads a roster CSV and returns a snapshot of every team's players
func Parse(r io.Reader) (*model.RosterSnapshot, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(len(utf8BOM)); err == nil && string(bom) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1 // ragged rows are expected
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &model.ParseError{Reason: "roster source is empty"}
		}
		return nil, &model.ParseError{Line: 1, Reason: err.Error()}
	}

	columns, err := parseHeader(header)
	if err != nil {
		return nil, err
	}
	// csv skips blank lines, so the sub-header is found by its physical line
	headerLine, _ := reader.FieldPos(0)
	subHeaderLine := headerLine + 1

	snapshot := &model.RosterSnapshot{
		Teams:   make([]string, 0, len(columns)),
		Players: make(map[string][]model.Player, len(columns)),
	}
	for _, tc := range columns {
		snapshot.Teams = append(snapshot.Teams, tc.name)
		snapshot.Players[tc.name] = []model.Player{}
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.Line
			}
			return nil, &model.ParseError{Line: line, Reason: err.Error()}
		}
		line, _ := reader.FieldPos(0)
		if line == subHeaderLine {
			continue
		}

		for _, tc := range columns {
			player, ok, err := playerAt(record, tc.col)
			if err != nil {
				return nil, &model.ParseError{Line: line, Reason: fmt.Sprintf("team %s: %v", tc.name, err)}
			}
			if ok {
				snapshot.Players[tc.name] = append(snapshot.Players[tc.name], player)
			}
		}
	}

	return snapshot, nil
}

func parseHeader(header []string) ([]teamColumn, error) {
	var columns []teamColumn
	seen := make(map[string]bool)

	for col := 0; col < len(header); col += columnsPerTeam {
		name := strings.TrimSpace(header[col])
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, &model.ParseError{Line: 1, Reason: fmt.Sprintf("duplicate team %q", name)}
		}
		seen[name] = true
		columns = append(columns, teamColumn{name: name, col: col})
	}

	if len(columns) == 0 {
		return nil, &model.ParseError{Line: 1, Reason: "header row has no team columns"}
	}
	return columns, nil
}

// playerAt extracts a team's player from a data row
// Missing columns or an empty name/cost mean the team has no player on this row
func playerAt(record []string, col int) (model.Player, bool, error) {
	if col+1 >= len(record) {
		return model.Player{}, false, nil
	}
	name := strings.TrimSpace(record[col])
	cost := strings.TrimSpace(record[col+1])
	if name == "" || cost == "" {
		return model.Player{}, false, nil
	}

	lastYear, err := parseCost(cost)
	if err != nil {
		return model.Player{}, false, err
	}
	return model.Player{
		Name:         NormalizeName(name),
		LastYearCost: lastYear,
		ThisYearCost: KeeperCost(lastYear),
	}, true, nil
}

// NormalizeName turns "Last, First" into "First Last"; other names pass through
func NormalizeName(raw string) string {
	last, first, ok := strings.Cut(raw, ",")
	if !ok {
		return raw
	}
	last, first = strings.TrimSpace(last), strings.TrimSpace(first)
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}

// maxCost bounds cost cells so keeper and budget sums cannot overflow
const maxCost = 1_000_000

// parseCost reads the leading digits of a cost cell, defaulting to 0
// A cost above maxCost is an error, never a clamped value
func parseCost(s string) (int, error) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n > maxCost {
		return 0, fmt.Errorf("cost %s exceeds %d", s[:end], maxCost)
	}
	return n, nil
}
