package services

import (
	"context"
	"fmt"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
	"github.com/vncsmyrnk/tabsvspaces/internal/core/ports"
)

type summaryService struct {
	voteRepo ports.VoteRepository
}

func NewSummaryService(voteRepo ports.VoteRepository) ports.SummaryService {
	return &summaryService{
		voteRepo: voteRepo,
	}
}

func (s *summaryService) Summarize(ctx context.Context) (*domain.Summary, error) {
	votes, err := s.voteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch all votes: %w", err)
	}

	return domain.Tally(votes, domain.RecentVotesLimit), nil
}
