package ports

import (
	"context"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
)

type SummaryService interface {
	Summarize(ctx context.Context) (*domain.Summary, error)
}
