package views

import (
	"time"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
)

func LeadLine(s *domain.Summary) string {
	switch s.LeadTeam {
	case domain.TeamTabs:
		return "TABS are winning"
	case domain.TeamSpaces:
		return "SPACES are winning"
	default:
		return "TABS and SPACES are evenly matched"
	}
}

// FormatTimestamp renders a vote time; votes without one show a dash.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04:05 MST")
}
