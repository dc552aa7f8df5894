// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package scim

import (
	"errors"
	"fmt"
)

var ErrUserNotFound = errors.New("user not found")

// HTTPError is returned when the directory answers with a non-2xx status.
type HTTPError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
}
