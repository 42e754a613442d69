package google

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/ports"
)

// GoogleVerifier checks Google-issued OIDC ID tokens minted for clientID.
type GoogleVerifier struct {
	clientID string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewVerifier(clientID string) ports.TokenVerifier {
	return &GoogleVerifier{clientID: clientID, validate: idtoken.Validate}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*ports.TokenPayload, error) {
	payload, err := v.validate(ctx, token, v.clientID)
	if err != nil {
		return nil, err
	}
	return payloadFromClaims(payload.Subject, payload.Claims)
}

func payloadFromClaims(subject string, claims map[string]interface{}) (*ports.TokenPayload, error) {
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, errors.New("email not found in claims")
	}
	name, _ := claims["name"].(string)
	return &ports.TokenPayload{Subject: subject, Email: email, Name: name}, nil
}
