// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated is returned when no HTTP address is configured, so
// the sync server has nothing to listen on.
var (
	errNoServersAreCreated = errors.New("no servers are created")
)
