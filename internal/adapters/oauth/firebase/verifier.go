package firebase

import (
	"context"
	"errors"
	"fmt"

	fb "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/ports"
)

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier checks ID tokens issued by Firebase Authentication.
type FirebaseVerifier struct {
	client idTokenVerifier
}

// NewVerifier initializes the Firebase Admin SDK with application default
// credentials. projectID may be empty when the credentials carry one.
func NewVerifier(ctx context.Context, projectID string) (ports.TokenVerifier, error) {
	var conf *fb.Config
	if projectID != "" {
		conf = &fb.Config{ProjectID: projectID}
	}

	app, err := fb.NewApp(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth: %w", err)
	}

	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*ports.TokenPayload, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}

	email, ok := decoded.Claims["email"].(string)
	if !ok || email == "" {
		return nil, errors.New("email not found in claims")
	}
	name, _ := decoded.Claims["name"].(string)

	return &ports.TokenPayload{Subject: decoded.UID, Email: email, Name: name}, nil
}
