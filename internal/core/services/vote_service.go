package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
	"github.com/vncsmyrnk/tabsvspaces/internal/core/ports"
	"github.com/vncsmyrnk/tabsvspaces/internal/metrics"
)

type voteService struct {
	log        *zap.Logger
	voteRepo   ports.VoteRepository
	auth       ports.AuthService
	publishers map[string]ports.VoteEventPublisher
}

// NewVoteService wires the write path. publishers are keyed by sink name, which
// only shows up in logs and metrics.
func NewVoteService(log *zap.Logger, voteRepo ports.VoteRepository, auth ports.AuthService, publishers map[string]ports.VoteEventPublisher) ports.VoteService {
	return &voteService{
		log:        log,
		voteRepo:   voteRepo,
		auth:       auth,
		publishers: publishers,
	}
}

func (s *voteService) Cast(ctx context.Context, input ports.VoteInput) (*domain.Vote, error) {
	team, err := domain.ParseTeam(input.Team)
	if err != nil {
		metrics.VoteRejections.WithLabelValues("invalid_team").Inc()
		return nil, err
	}

	user, err := s.auth.ResolveIdentity(ctx, input.Credentials)
	if err != nil {
		metrics.VoteRejections.WithLabelValues(rejectionReason(err)).Inc()
		return nil, err
	}

	vote := &domain.Vote{
		ID:   uuid.NewString(),
		Team: team,
		User: user,
	}
	if err := s.voteRepo.Save(ctx, vote); err != nil {
		return nil, err
	}
	metrics.VotesCast.WithLabelValues(string(team)).Inc()

	s.publish(ctx, vote)

	return vote, nil
}

// publish never fails the vote: by the time it runs the record is stored.
func (s *voteService) publish(ctx context.Context, vote *domain.Vote) {
	event := domain.NewVoteCastEvent(vote)
	for sink, p := range s.publishers {
		if err := p.PublishVoteCast(ctx, event); err != nil {
			metrics.EventPublishFailures.WithLabelValues(sink).Inc()
			s.log.Warn("failed to publish vote event",
				zap.String("sink", sink),
				zap.String("vote_id", vote.ID),
				zap.Error(err),
			)
		}
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, domain.ErrInvalidCredential):
		return "invalid_credential"
	default:
		return "other"
	}
}
