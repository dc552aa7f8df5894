// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package credentials

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/scim-bulk/internal/logging"
	"github.com/canonical/scim-bulk/internal/monitoring"
	"github.com/canonical/scim-bulk/internal/tracing"
)

//go:generate mockgen -build_flags=--mod=mod -package credentials -destination ./mock_logger.go -source=../../internal/logging/interfaces.go

func tokenHandler(t *testing.T, clientID, clientSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %v", err)
		}

		if r.PostForm.Get("grant_type") != "client_credentials" {
			t.Errorf("unexpected grant type %q", r.PostForm.Get("grant_type"))
		}

		if r.PostForm.Get("client_id") != clientID || r.PostForm.Get("client_secret") != clientSecret {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "invalid_client"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "token-abc",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}
}

func TestAccessToken(t *testing.T) {
	tests := []struct {
		name         string
		clientSecret string
		setupMocks   func(*MockLoggerInterface, *MockSecurityLoggerInterface)
		expected     string
		expectErr    bool
	}{
		{
			name:         "token issued",
			clientSecret: "secret",
			setupMocks: func(logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {
				logger.EXPECT().Infof(gomock.Any(), gomock.Any()).Times(1)
				logger.EXPECT().Info(gomock.Any()).Times(1)
				logger.EXPECT().Security().Return(security).Times(1)
				security.EXPECT().AuthnSuccess("app").Times(1)
			},
			expected: "token-abc",
		},
		{
			name:         "invalid client",
			clientSecret: "wrong",
			setupMocks: func(logger *MockLoggerInterface, security *MockSecurityLoggerInterface) {
				logger.EXPECT().Infof(gomock.Any(), gomock.Any()).Times(1)
				logger.EXPECT().Errorf(gomock.Any(), gomock.Any()).MinTimes(1)
				logger.EXPECT().Security().Return(security).Times(1)
				security.EXPECT().AuthnFailure("app", gomock.Any()).Times(1)
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			srv := httptest.NewServer(tokenHandler(t, "app", "secret"))
			defer srv.Close()

			mockLogger := NewMockLoggerInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)
			tt.setupMocks(mockLogger, mockSecurity)

			cfg := NewConfig(srv.URL+"/token", "", false, "app", tt.clientSecret, nil, time.Second)
			p := NewProvider(cfg, nil, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("scim-bulk"), mockLogger)

			token, err := p.AccessToken(context.Background())

			if tt.expectErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if token != tt.expected {
				t.Fatalf("expected token %q, got %q", tt.expected, token)
			}
		})
	}
}

func TestAccessTokenDiscovery(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/oidc/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"issuer":                 srv.URL + "/oidc",
			"authorization_endpoint": srv.URL + "/oidc/authorize",
			"token_endpoint":         srv.URL + "/oidc/token",
			"jwks_uri":               srv.URL + "/oidc/jwks",
		})
	})
	mux.HandleFunc("/oidc/token", tokenHandler(t, "app", "secret"))

	cfg := NewConfig("", srv.URL+"/oidc", true, "app", "secret", []string{"openid"}, 0)
	p := NewProvider(cfg, srv.Client(), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("scim-bulk"), logging.NewNoopLogger())

	token, err := p.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "token-abc" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAccessTokenDiscoveryFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	cfg := NewConfig("", srv.URL, true, "app", "secret", nil, 0)
	p := NewProvider(cfg, nil, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("scim-bulk"), logging.NewNoopLogger())

	if _, err := p.AccessToken(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestAccessTokenMissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token_type": "Bearer"}`))
	}))
	defer srv.Close()

	cfg := NewConfig(srv.URL, "", false, "app", "secret", nil, 0)
	p := NewProvider(cfg, nil, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("scim-bulk"), logging.NewNoopLogger())

	if _, err := p.AccessToken(context.Background()); err == nil {
		t.Fatal("expected error for response without access_token")
	}
}
