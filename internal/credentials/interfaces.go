// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package credentials

import (
	"context"
)

type TokenProviderInterface interface {
	AccessToken(context.Context) (string, error)
}
