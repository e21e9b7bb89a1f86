// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the headless sync agent runtime.
//
// It wires sign-in, the client services, and background synchronization
// into a single process lifecycle that runs until a stop signal.
package client
