package domain

import (
	"time"
)

type Team string

const (
	TeamTabs   Team = "TABS"
	TeamSpaces Team = "SPACES"
)

// Teams lists the only selections a vote can carry.
var Teams = []Team{TeamTabs, TeamSpaces}

// ParseTeam returns ErrInvalidTeam unless s is exactly one of Teams.
func ParseTeam(s string) (Team, error) {
	for _, t := range Teams {
		if string(t) == s {
			return t, nil
		}
	}
	return "", ErrInvalidTeam
}

// Vote is an append-only record. Timestamp is assigned by the store; the zero
// value means the record carries no timestamp.
type Vote struct {
	ID        string    `json:"id"`
	Team      Team      `json:"team"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

type VoteCastEvent struct {
	ID        string    `json:"id"`
	Team      Team      `json:"team"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

func NewVoteCastEvent(v *Vote) VoteCastEvent {
	return VoteCastEvent{
		ID:        v.ID,
		Team:      v.Team,
		User:      v.User,
		Timestamp: v.Timestamp,
	}
}
