// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package bulk

import (
	"github.com/canonical/scim-bulk/internal/tracing"
)

func tracingNoop() tracing.TracingInterface {
	return tracing.NewNoopTracer()
}
