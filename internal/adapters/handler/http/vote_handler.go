package http

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
	"github.com/vncsmyrnk/tabsvspaces/internal/core/ports"
)

// authQueryParam set to "false" asks for the development bypass. It only
// takes effect on the configured dev host.
const authQueryParam = "auth"

type VoteHandler struct {
	log     *zap.Logger
	service ports.VoteService
}

func NewVoteHandler(log *zap.Logger, service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		log:     log,
		service: service,
	}
}

type detailResponse struct {
	Detail string `json:"detail"`
}

func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	input := ports.VoteInput{
		Team: r.PostFormValue("team"),
		Credentials: ports.Credentials{
			Host:          hostname(r.Host),
			AuthDisabled:  r.URL.Query().Get(authQueryParam) == "false",
			Authorization: r.Header.Get("Authorization"),
		},
	}

	vote, err := h.service.Cast(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTeam):
			writeJSON(w, http.StatusBadRequest, detailResponse{Detail: "Invalid vote"})
		case errors.Is(err, domain.ErrMissingCredential):
			writeJSON(w, http.StatusUnauthorized, detailResponse{Detail: "Missing Authorization header"})
		case errors.Is(err, domain.ErrInvalidCredential):
			writeJSON(w, http.StatusUnauthorized, detailResponse{Detail: "Invalid token: " + invalidTokenReason(err)})
		default:
			h.log.Error("failed to cast vote", zap.Error(err), zap.String("team", input.Team))
			writeJSON(w, http.StatusInternalServerError, detailResponse{Detail: "Failed to record vote"})
		}
		return
	}

	writeJSON(w, http.StatusOK, detailResponse{
		Detail: "Vote recorded for " + string(vote.Team) + " by " + vote.User,
	})
}

// invalidTokenReason strips the sentinel text so only the verifier's reason
// is shown to the caller.
func invalidTokenReason(err error) string {
	return strings.TrimPrefix(err.Error(), domain.ErrInvalidCredential.Error()+": ")
}

func hostname(hostport string) string {
	host, _, err := net.SplitHostPort(hostport)
	if err != nil {
		host = hostport
	}
	return strings.Trim(host, "[]")
}
