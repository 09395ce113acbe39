package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mcoot/fantasy-keepers/internal/model"
	"github.com/mcoot/fantasy-keepers/internal/services/keepers"
	"github.com/mcoot/fantasy-keepers/internal/services/selection"
	"github.com/mcoot/fantasy-keepers/internal/web/middleware"
	"github.com/mcoot/fantasy-keepers/internal/web/templates/layout"
	"github.com/mcoot/fantasy-keepers/internal/web/templates/pages"
)

// KeepersHandler serves the keeper selection page
type KeepersHandler struct {
	controller keepers.ControllerInterface
	season     int
	logger     *slog.Logger
}

// NewKeepersHandler creates a new KeepersHandler
func NewKeepersHandler(controller keepers.ControllerInterface, season int, logger *slog.Logger) *KeepersHandler {
	return &KeepersHandler{
		controller: controller,
		season:     season,
		logger:     logger,
	}
}

// View renders the page; ?team= picks a roster and repeated ?keeper= values preview a selection
func (h *KeepersHandler) View(w http.ResponseWriter, r *http.Request) {
	flash := middleware.GetFlash(r.Context())

	snapshot, err := h.controller.Roster(r.Context())
	if err != nil {
		h.logger.Error("failed to load roster", slog.String("error", err.Error()))
		h.render(w, r, http.StatusInternalServerError, pages.KeepersData{
			PageData: h.pageData(&layout.FlashMessage{Type: "error", Message: "Roster is not available right now"}),
		})
		return
	}

	data := pages.KeepersData{
		PageData: h.pageData(flash),
		Teams:    snapshot.Teams,
	}
	team := r.URL.Query().Get("team")
	if team != "" {
		roster, err := snapshot.Roster(team)
		if err != nil {
			data.Flash = &layout.FlashMessage{Type: "error", Message: "Team not found"}
			h.render(w, r, http.StatusNotFound, data)
			return
		}

		set, truncated := previewSelection(roster, r.URL.Query()["keeper"])
		if truncated && data.Flash == nil {
			data.Flash = &layout.FlashMessage{Type: "error", Message: "Maximum 3 keepers allowed"}
		}

		data.SelectedTeam = team
		data.Roster = roster
		data.Selected = set
	}

	h.render(w, r, http.StatusOK, data)
}

// LockIn saves the posted selection and redirects back to the page with a banner
func (h *KeepersHandler) LockIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	team := r.PostFormValue("team")
	names := r.PostForm["keeper"]
	if names == nil {
		// No boxes ticked is an empty selection, not a malformed one
		names = []string{}
	}

	confirmation, err := h.controller.Submit(r.Context(), keepers.SubmitRequest{
		Team:     team,
		Players:  names,
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		middleware.SetFlash(w, "error", userMessage(err))
		http.Redirect(w, r, pages.KeepersURL(team, names), http.StatusSeeOther)
		return
	}

	message := "Keepers locked in for " + confirmation.Team
	if confirmation.Summary != nil && confirmation.Summary.OverBudget() {
		message += " (over the $200 cap)"
	}
	middleware.SetFlash(w, "success", message)
	http.Redirect(w, r, pages.KeepersURL(team, confirmation.Keepers), http.StatusSeeOther)
}

func (h *KeepersHandler) pageData(flash *layout.FlashMessage) layout.PageData {
	return layout.PageData{
		Title:  "Keepers",
		Season: h.season,
		Flash:  flash,
	}
}

func (h *KeepersHandler) render(w http.ResponseWriter, r *http.Request, status int, data pages.KeepersData) {
	if data.Roster != nil && data.Selected == nil {
		data.Selected = selection.NewSet()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.Keepers(data).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render keepers page", slog.String("error", err.Error()))
	}
}

// previewSelection builds the selection shown on the page from the requested names.
// Unknown names are skipped; truncated reports names dropped past the keeper limit.
func previewSelection(roster []model.Player, names []string) (set *selection.Set, truncated bool) {
	set = selection.NewSet()
	for _, name := range names {
		for _, p := range roster {
			if p.Name != name {
				continue
			}
			if err := set.Add(model.Keeper{Name: p.Name, Cost: p.ThisYearCost}); errors.Is(err, selection.ErrSelectionFull) {
				truncated = true
			}
			break
		}
	}
	return set, truncated
}

// userMessage is the banner text for a failed lock-in
func userMessage(err error) string {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Reason
	}
	return "Could not save keepers, please try again"
}
