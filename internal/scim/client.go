// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package scim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/canonical/scim-bulk/internal/logging"
	"github.com/canonical/scim-bulk/internal/monitoring"
	"github.com/canonical/scim-bulk/internal/tracing"
)

const (
	contentType = "application/scim+json"

	lookupAttributes = "id,userName,externalId,emails.value"
	// two results are enough to detect an ambiguous match
	lookupCount = 2

	DefaultLookupTimeout = 20 * time.Second
	DefaultBulkTimeout   = 180 * time.Second
)

type Config struct {
	BaseURL       string
	AccessToken   string
	LookupTimeout time.Duration
	BulkTimeout   time.Duration
}

func NewConfig(baseURL, accessToken string, lookupTimeout, bulkTimeout time.Duration) *Config {
	c := new(Config)

	c.BaseURL = strings.TrimRight(baseURL, "/")
	c.AccessToken = accessToken
	c.LookupTimeout = lookupTimeout
	c.BulkTimeout = bulkTimeout

	if c.LookupTimeout <= 0 {
		c.LookupTimeout = DefaultLookupTimeout
	}
	if c.BulkTimeout <= 0 {
		c.BulkTimeout = DefaultBulkTimeout
	}

	return c
}

// Client talks to the SCIM Bulk and Users endpoints of the directory.
type Client struct {
	bulkURL  string
	usersURL string
	token    string

	lookupTimeout time.Duration
	bulkTimeout   time.Duration

	c HTTPClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// SubmitOperations wraps ops in a BulkRequest envelope and submits it.
func (c *Client) SubmitOperations(ctx context.Context, ops []Operation) (*BulkResponse, error) {
	return c.SubmitRequest(ctx, NewBulkRequest(ops))
}

// SubmitRequest POSTs a complete BulkRequest envelope. Any transport error
// or non-2xx answer is returned to the caller.
func (c *Client) SubmitRequest(ctx context.Context, req *BulkRequest) (*BulkResponse, error) {
	ctx, span := c.tracer.Start(ctx, "scim.Client.SubmitRequest")
	defer span.End()

	c.logger.Infof("Sending bulk request with %d operations", len(req.Operations))

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bulk request: %w", err)
	}
	c.logger.Debugf("Bulk payload: %s", body)

	ctx, cancel := context.WithTimeout(ctx, c.bulkTimeout)
	defer cancel()

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.bulkURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build bulk request: %w", err)
	}

	resp := new(BulkResponse)
	if err := c.do(r, "/Bulk", "bulk request", resp); err != nil {
		c.logger.Errorf("Bulk request failed: %v", err)
		return nil, err
	}

	return resp, nil
}

// FindUserID returns the id of the first user matching any of the non-empty
// fields of q. ErrUserNotFound is returned when nothing matches or when q
// has no criteria at all, in which case no request is sent.
func (c *Client) FindUserID(ctx context.Context, q UserQuery) (string, error) {
	ctx, span := c.tracer.Start(ctx, "scim.Client.FindUserID")
	defer span.End()

	filter := userFilter(q)
	if filter == "" {
		c.logger.Warn("No search criteria provided for user lookup")
		return "", ErrUserNotFound
	}

	params := url.Values{}
	params.Set("filter", filter)
	params.Set("attributes", lookupAttributes)
	params.Set("count", strconv.Itoa(lookupCount))

	ctx, cancel := context.WithTimeout(ctx, c.lookupTimeout)
	defer cancel()

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, c.usersURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build user lookup request: %w", err)
	}

	list := new(listResponse)
	if err := c.do(r, "/Users", "user lookup", list); err != nil {
		c.logger.Errorf("User lookup failed: %v", err)
		return "", err
	}

	if len(list.Resources) == 0 {
		c.logger.Debugf("No user found for %s", q)
		return "", ErrUserNotFound
	}

	if len(list.Resources) > 1 {
		c.logger.Warnf("Multiple users match criteria: %s", q)
	}

	return list.Resources[0].ID, nil
}

func (c *Client) do(r *http.Request, route, op string, out any) error {
	r.Header.Set("Authorization", "Bearer "+c.token)
	r.Header.Set("Accept", contentType)
	if r.Body != nil {
		r.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.c.Do(r)
	if err != nil {
		c.setAvailability(0)
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	c.setAvailability(1)
	c.setResponseTime(route, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: failed to read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Errorf("%s returned status %d: %s", op, resp.StatusCode, body)
		return &HTTPError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}

	return nil
}

func (c *Client) setAvailability(v float64) {
	if err := c.monitor.SetDependencyAvailability(map[string]string{"component": "scim"}, v); err != nil {
		c.logger.Debugf("Failed to record dependency availability: %v", err)
	}
}

func (c *Client) setResponseTime(route string, status int, d time.Duration) {
	labels := map[string]string{"route": route, "status": strconv.Itoa(status)}
	if err := c.monitor.SetResponseTimeMetric(labels, d.Seconds()); err != nil {
		c.logger.Debugf("Failed to record response time: %v", err)
	}
}

func userFilter(q UserQuery) string {
	filters := make([]string, 0, 3)
	if q.UserName != "" {
		filters = append(filters, fmt.Sprintf(`userName eq "%s"`, escapeFilterValue(q.UserName)))
	}
	if q.ExternalID != "" {
		filters = append(filters, fmt.Sprintf(`externalId eq "%s"`, escapeFilterValue(q.ExternalID)))
	}
	if q.Email != "" {
		filters = append(filters, fmt.Sprintf(`emails.value eq "%s"`, escapeFilterValue(q.Email)))
	}
	return strings.Join(filters, " or ")
}

func escapeFilterValue(v string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(v)
}

func NewClient(cfg *Config, c HTTPClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	s := new(Client)

	s.bulkURL = cfg.BaseURL + "/Bulk"
	s.usersURL = cfg.BaseURL + "/Users"
	s.token = cfg.AccessToken
	s.lookupTimeout = cfg.LookupTimeout
	s.bulkTimeout = cfg.BulkTimeout

	s.c = c
	if s.c == nil {
		s.c = http.DefaultClient
	}

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
