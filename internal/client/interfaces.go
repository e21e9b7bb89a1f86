// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client is the lifecycle contract of the device sync agent.
type Client interface {
	// Run signs in, starts the background sync loop, and blocks until a
	// stop signal arrives.
	Run() error
}
