package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/tabsvspaces/internal/core/domain"
	"github.com/vncsmyrnk/tabsvspaces/internal/core/ports"
)

func TestAuthService_ResolveIdentity(t *testing.T) {
	verifier := mapVerifier{
		"good": {Subject: "uid-1", Email: "ada@example.com"},
	}
	svc := NewAuthService(verifier, "localhost")

	tests := []struct {
		name    string
		creds   ports.Credentials
		want    string
		wantErr error
	}{
		{
			name:  "verified bearer token",
			creds: ports.Credentials{Host: "tabs.example.com", Authorization: "Bearer good"},
			want:  "ada@example.com",
		},
		{
			name:  "header without bearer prefix",
			creds: ports.Credentials{Authorization: "good"},
			want:  "ada@example.com",
		},
		{
			name:  "token after the last bearer prefix",
			creds: ports.Credentials{Authorization: "Bearer Bearer good"},
			want:  "ada@example.com",
		},
		{
			name:  "sentinel token",
			creds: ports.Credentials{Host: "tabs.example.com", Authorization: "Bearer dummyToken"},
			want:  DevIdentity,
		},
		{
			name:  "dev host with auth disabled",
			creds: ports.Credentials{Host: "localhost", AuthDisabled: true},
			want:  DevIdentity,
		},
		{
			name:  "dev host bypass skips a bad token",
			creds: ports.Credentials{Host: "localhost", AuthDisabled: true, Authorization: "Bearer bad"},
			want:  DevIdentity,
		},
		{
			name:    "dev host without the query flag",
			creds:   ports.Credentials{Host: "localhost"},
			wantErr: domain.ErrMissingCredential,
		},
		{
			name:    "auth disabled on another host",
			creds:   ports.Credentials{Host: "tabs.example.com", AuthDisabled: true},
			wantErr: domain.ErrMissingCredential,
		},
		{
			name:    "bad token",
			creds:   ports.Credentials{Authorization: "Bearer bad"},
			wantErr: domain.ErrInvalidCredential,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ResolveIdentity(context.Background(), tt.creds)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthService_InvalidCredentialKeepsReason(t *testing.T) {
	svc := NewAuthService(mapVerifier{}, "localhost")

	_, err := svc.ResolveIdentity(context.Background(), ports.Credentials{Authorization: "Bearer nope"})

	require.ErrorIs(t, err, domain.ErrInvalidCredential)
	assert.EqualError(t, err, "invalid token: signature mismatch")
}

func TestAuthService_EmptyDevHostDisablesBypass(t *testing.T) {
	svc := NewAuthService(mapVerifier{}, "")

	_, err := svc.ResolveIdentity(context.Background(), ports.Credentials{AuthDisabled: true})

	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}
