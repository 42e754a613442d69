package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
)

func TestVoteDocument_Decode(t *testing.T) {
	ts := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)

	tests := []struct {
		name string
		raw  bson.M
		want *domain.Vote
	}{
		{
			name: "with timestamp",
			raw:  bson.M{"_id": "v1", "team": "TABS", "user": "a@example.com", "timestamp": ts},
			want: &domain.Vote{ID: "v1", Team: domain.TeamTabs, User: "a@example.com", Timestamp: ts},
		},
		{
			name: "without timestamp",
			raw:  bson.M{"_id": "v2", "team": "SPACES", "user": "b@example.com"},
			want: &domain.Vote{ID: "v2", Team: domain.TeamSpaces, User: "b@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := bson.Marshal(tt.raw)
			require.NoError(t, err)

			var doc voteDocument
			require.NoError(t, bson.Unmarshal(data, &doc))

			got := doc.toVote()
			assert.Equal(t, tt.want.ID, got.ID)
			assert.Equal(t, tt.want.Team, got.Team)
			assert.Equal(t, tt.want.User, got.User)
			assert.True(t, tt.want.Timestamp.Equal(got.Timestamp))
		})
	}
}
