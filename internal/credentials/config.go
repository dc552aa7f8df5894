// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package credentials

import (
	"time"
)

const DefaultTimeout = 30 * time.Second

type Config struct {
	TokenURL     string
	IssuerURL    string
	Discovery    bool
	ClientID     string
	ClientSecret string
	Scopes       []string
	Timeout      time.Duration
}

func NewConfig(tokenURL, issuerURL string, discovery bool, clientID, clientSecret string, scopes []string, timeout time.Duration) *Config {
	c := new(Config)

	c.TokenURL = tokenURL
	c.IssuerURL = issuerURL
	c.Discovery = discovery
	c.ClientID = clientID
	c.ClientSecret = clientSecret
	c.Scopes = scopes
	c.Timeout = timeout

	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}

	return c
}
