// Package config provides configuration loading, merging, and validation for
// the vault sync server and the device agent.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the agent, which adds the local storage, server
// adapter, and sign-in credential sections.
package config
