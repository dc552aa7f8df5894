// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package scim

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

const (
	SchemaBulkRequest = "urn:ietf:params:scim:api:messages:2.0:BulkRequest"

	MethodPost   = "POST"
	MethodDelete = "DELETE"
)

// Operation is a single create or delete instruction inside a bulk request.
type Operation struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	BulkID string `json:"bulkId,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// BulkRequest is the envelope POSTed to the /Bulk endpoint.
type BulkRequest struct {
	Schemas    []string    `json:"schemas"`
	Operations []Operation `json:"Operations"`
}

func NewBulkRequest(ops []Operation) *BulkRequest {
	r := new(BulkRequest)
	r.Schemas = []string{SchemaBulkRequest}
	r.Operations = ops
	return r
}

// Status is the per-operation status of a bulk response. Servers send it
// either as a number or as a numeric string; anything else decodes to an
// invalid status with code 0.
type Status struct {
	Code  int
	Raw   string
	Valid bool
}

func (s *Status) UnmarshalJSON(b []byte) error {
	*s = Status{}

	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	s.Raw = string(b)

	var raw any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil
	}

	var text string
	switch v := raw.(type) {
	case json.Number:
		text = v.String()
	case string:
		s.Raw = v
		text = strings.TrimSpace(v)
	default:
		return nil
	}

	if code, err := strconv.Atoi(text); err == nil {
		s.Code, s.Valid = code, true
		return nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && f == float64(int(f)) {
		s.Code, s.Valid = int(f), true
	}

	return nil
}

func (s Status) IsSuccess() bool {
	return s.Valid && s.Code >= 200 && s.Code < 300
}

// OperationResult is the outcome of one operation inside a bulk response.
type OperationResult struct {
	BulkID   string          `json:"bulkId"`
	Method   string          `json:"method,omitempty"`
	Location string          `json:"location,omitempty"`
	Status   Status          `json:"status"`
	Response json.RawMessage `json:"response,omitempty"`
}

type errorDetail struct {
	Detail   string `json:"detail"`
	ScimType string `json:"scimType"`
}

// ErrorDetail extracts the SCIM error detail and scimType from the
// operation response, when present.
func (o OperationResult) ErrorDetail() (string, string) {
	d := errorDetail{}
	if len(o.Response) > 0 {
		_ = json.Unmarshal(o.Response, &d)
	}
	if d.Detail == "" {
		d.Detail = "no detail provided"
	}
	return d.Detail, d.ScimType
}

// BulkResponse is the body returned by the /Bulk endpoint.
type BulkResponse struct {
	Schemas    []string
	Operations []OperationResult

	hasOperations bool
}

func (r *BulkResponse) UnmarshalJSON(b []byte) error {
	var body struct {
		Schemas    []string           `json:"schemas"`
		Operations *[]OperationResult `json:"Operations"`
	}
	if err := json.Unmarshal(b, &body); err != nil {
		return err
	}

	r.Schemas = body.Schemas
	r.hasOperations = body.Operations != nil
	r.Operations = nil
	if body.Operations != nil {
		r.Operations = *body.Operations
	}

	return nil
}

// HasOperations reports whether the response carried an Operations list.
func (r *BulkResponse) HasOperations() bool {
	return r != nil && r.hasOperations
}

// NewBulkResponse builds a response carrying the given results.
func NewBulkResponse(results ...OperationResult) *BulkResponse {
	r := new(BulkResponse)
	r.Operations = results
	r.hasOperations = true
	return r
}

// UserQuery holds the identifying fields used to look up a user. Empty
// fields are left out of the filter.
type UserQuery struct {
	UserName   string
	ExternalID string
	Email      string
}

func (q UserQuery) String() string {
	switch {
	case q.UserName != "":
		return q.UserName
	case q.ExternalID != "":
		return q.ExternalID
	default:
		return q.Email
	}
}

type listResponse struct {
	TotalResults int `json:"totalResults"`
	Resources    []struct {
		ID string `json:"id"`
	} `json:"Resources"`
}
