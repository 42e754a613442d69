package domain

import (
	"sort"
)

const (
	RecentVotesLimit = 5
	LeaderMessage    = "Vote now!"
)

type Summary struct {
	TabsCount     int     `json:"tabs_count"`
	SpacesCount   int     `json:"spaces_count"`
	RecentVotes   []*Vote `json:"recent_votes"`
	LeadTeam      Team    `json:"lead_team,omitempty"`
	LeaderMessage string  `json:"leader_message"`
}

// HasLeader reports whether one team has strictly more votes than the other.
func (s *Summary) HasLeader() bool {
	return s.LeadTeam != ""
}

// Tally counts votes per team and picks the most recent ones. Records with a
// team outside Teams are not counted but can still appear as recent votes.
// Votes without a timestamp sort as the oldest.
func Tally(votes []*Vote, recentLimit int) *Summary {
	s := &Summary{
		RecentVotes:   []*Vote{},
		LeaderMessage: LeaderMessage,
	}

	for _, v := range votes {
		switch v.Team {
		case TeamTabs:
			s.TabsCount++
		case TeamSpaces:
			s.SpacesCount++
		}
	}

	switch {
	case s.TabsCount > s.SpacesCount:
		s.LeadTeam = TeamTabs
	case s.SpacesCount > s.TabsCount:
		s.LeadTeam = TeamSpaces
	}

	sorted := make([]*Vote, len(votes))
	copy(sorted, votes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	if recentLimit >= 0 && len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}
	s.RecentVotes = append(s.RecentVotes, sorted...)

	return s
}
