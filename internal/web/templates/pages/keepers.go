// Package pages renders the keeper selection page
package pages

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/fantasy-keepers/internal/model"
	"github.com/mcoot/fantasy-keepers/internal/services/selection"
	"github.com/mcoot/fantasy-keepers/internal/web/templates/layout"
)

// KeepersData is everything the keeper page shows
type KeepersData struct {
	layout.PageData

	Teams        []string
	SelectedTeam string
	// Roster is nil until a known team is picked
	Roster   []model.Player
	Selected *selection.Set
}

// Keepers renders the team picker, the roster table and the lock-in form
func Keepers(data KeepersData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := teamPicker(data).Render(ctx, w); err != nil {
			return err
		}
		if data.Roster == nil {
			return nil
		}
		if err := rosterTable(data).Render(ctx, w); err != nil {
			return err
		}
		if err := budgetSummary(data.Selected.Summary()).Render(ctx, w); err != nil {
			return err
		}
		return lockInForm(data).Render(ctx, w)
	}))
}

func teamPicker(data KeepersData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<form id="team-picker" method="get" action="/"><label for="team">Team</label> <select id="team" name="team"><option value="">Choose your team</option>`)
		for _, team := range data.Teams {
			selected := ""
			if team == data.SelectedTeam {
				selected = " selected"
			}
			fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`, templ.EscapeString(team), selected, templ.EscapeString(team))
		}
		b.WriteString(`</select> <button type="submit">Show roster</button></form>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func rosterTable(data KeepersData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<form id="selection" method="get" action="/">`)
		fmt.Fprintf(&b, `<input type="hidden" name="team" value="%s">`, templ.EscapeString(data.SelectedTeam))
		b.WriteString(`<table id="roster"><thead><tr><th>Keep</th><th>Player</th><th>Last year</th><th>This year</th></tr></thead><tbody>`)
		for _, p := range data.Roster {
			checked := ""
			if data.Selected.Contains(p.Name) {
				checked = " checked"
			}
			fmt.Fprintf(&b,
				`<tr class="player" data-name="%s"><td><input type="checkbox" name="keeper" value="%s"%s></td><td class="name">%s</td><td class="last-cost">$%d</td><td class="cost">$%d</td></tr>`,
				templ.EscapeString(p.Name), templ.EscapeString(p.Name), checked,
				templ.EscapeString(p.Name), p.LastYearCost, p.ThisYearCost,
			)
		}
		if len(data.Roster) == 0 {
			b.WriteString(`<tr><td colspan="4">No players on this roster</td></tr>`)
		}
		fmt.Fprintf(&b, `</tbody></table><p>Pick up to %d keepers.</p><button type="submit">Update totals</button></form>`, selection.MaxKeepers)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func budgetSummary(s selection.Summary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<section id="summary" class="%s"><p>Keepers: <span class="count">%d</span>/%d</p><p>Total: <span class="total">$%d</span></p><p>Remaining: <span class="remaining">$%d</span> of $%d</p></section>`,
			templ.EscapeString(string(s.Band)), s.Count, selection.MaxKeepers,
			s.TotalCost, s.RemainingBudget, selection.SalaryCap,
		)
		return err
	})
}

func lockInForm(data KeepersData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<form id="lock-in" method="post" action="/">`)
		fmt.Fprintf(&b, `<input type="hidden" name="team" value="%s">`, templ.EscapeString(data.SelectedTeam))
		for _, k := range data.Selected.Keepers() {
			fmt.Fprintf(&b, `<input type="hidden" name="keeper" value="%s">`, templ.EscapeString(k.Name))
		}
		b.WriteString(`<label for="password">Password</label> <input type="password" id="password" name="password" required> <button type="submit">Lock in keepers</button></form>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// KeepersURL is the page URL previewing a team and selection
func KeepersURL(team string, keepers []string) string {
	if team == "" {
		return "/"
	}
	q := url.Values{"team": {team}}
	for _, k := range keepers {
		q.Add("keeper", k)
	}
	return "/?" + q.Encode()
}
