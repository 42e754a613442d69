package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
	"github.com/vncsmyrnk/tabsvspaces/internal/core/ports"
)

type memoryRepo struct {
	mu      sync.Mutex
	votes   []*domain.Vote
	saveErr error
	listErr error
	now     time.Time
}

func (r *memoryRepo) Save(_ context.Context, vote *domain.Vote) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = r.now.Add(time.Second)
	vote.Timestamp = r.now
	stored := *vote
	r.votes = append(r.votes, &stored)
	return nil
}

func (r *memoryRepo) List(context.Context) ([]*domain.Vote, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.Vote(nil), r.votes...), nil
}

func (r *memoryRepo) Ping(context.Context) error { return nil }

type mapVerifier map[string]*ports.TokenPayload

func (v mapVerifier) Verify(_ context.Context, token string) (*ports.TokenPayload, error) {
	if p, ok := v[token]; ok {
		return p, nil
	}
	return nil, errors.New("signature mismatch")
}

type recordingPublisher struct {
	events []domain.VoteCastEvent
	err    error
}

func (p *recordingPublisher) PublishVoteCast(_ context.Context, event domain.VoteCastEvent) error {
	p.events = append(p.events, event)
	return p.err
}
