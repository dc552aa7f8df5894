// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package credentials

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/canonical/scim-bulk/internal/logging"
	"github.com/canonical/scim-bulk/internal/monitoring"
	"github.com/canonical/scim-bulk/internal/tracing"
)

var _ TokenProviderInterface = (*Provider)(nil)

// Provider obtains access tokens with the OAuth2 client credentials grant.
type Provider struct {
	cfg *Config

	client *http.Client

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// AccessToken requests a new token from the authorization server. When
// discovery is enabled the token endpoint is read from the issuer's
// OpenID configuration first.
func (p *Provider) AccessToken(ctx context.Context) (string, error) {
	ctx, span := p.tracer.Start(ctx, "credentials.Provider.AccessToken")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)

	tokenURL, err := p.tokenURL(ctx)
	if err != nil {
		p.logger.Security().AuthnFailure(p.cfg.ClientID, err.Error())
		return "", err
	}

	p.logger.Infof("Fetching access token from %s...", tokenURL)

	cc := clientcredentials.Config{
		ClientID:     p.cfg.ClientID,
		ClientSecret: p.cfg.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       p.cfg.Scopes,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	start := time.Now()
	token, err := cc.Token(ctx)
	p.observe(err, time.Since(start))

	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && len(rerr.Body) > 0 {
			p.logger.Errorf("Response: %s", rerr.Body)
		}
		p.logger.Errorf("Failed to fetch access token: %v", err)
		p.logger.Security().AuthnFailure(p.cfg.ClientID, err.Error())
		return "", fmt.Errorf("failed to fetch access token: %w", err)
	}

	p.logger.Info("Access token fetched successfully")
	p.logger.Security().AuthnSuccess(p.cfg.ClientID)

	return token.AccessToken, nil
}

func (p *Provider) tokenURL(ctx context.Context) (string, error) {
	if !p.cfg.Discovery {
		return p.cfg.TokenURL, nil
	}

	p.logger.Debugf("Using OIDC discovery for issuer: %s", p.cfg.IssuerURL)

	provider, err := oidc.NewProvider(oidc.ClientContext(ctx, p.client), p.cfg.IssuerURL)
	if err != nil {
		return "", fmt.Errorf("failed to discover token endpoint: %w", err)
	}

	tokenURL := provider.Endpoint().TokenURL
	if tokenURL == "" {
		return "", fmt.Errorf("issuer %s does not advertise a token endpoint", p.cfg.IssuerURL)
	}

	return tokenURL, nil
}

func (p *Provider) observe(err error, d time.Duration) {
	status := http.StatusOK
	available := 1.0

	var rerr *oauth2.RetrieveError
	switch {
	case errors.As(err, &rerr) && rerr.Response != nil:
		status = rerr.Response.StatusCode
	case err != nil:
		status = 0
		available = 0
	}

	if err := p.monitor.SetDependencyAvailability(map[string]string{"component": "token"}, available); err != nil {
		p.logger.Debugf("Failed to record dependency availability: %v", err)
	}

	labels := map[string]string{"route": "/token", "status": strconv.Itoa(status)}
	if err := p.monitor.SetResponseTimeMetric(labels, d.Seconds()); err != nil {
		p.logger.Debugf("Failed to record response time: %v", err)
	}
}

func NewProvider(cfg *Config, client *http.Client, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Provider {
	p := new(Provider)

	p.cfg = cfg
	p.client = client
	if p.client == nil {
		p.client = http.DefaultClient
	}

	p.tracer = tracer
	p.monitor = monitor
	p.logger = logger

	return p
}
