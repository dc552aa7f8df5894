// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package scim

import "net/http"

type HTTPClientInterface interface {
	Do(*http.Request) (*http.Response, error)
}
