// Package config loads, merges and validates the configuration of the
// gpilotd daemon and the gpilotctl control tool.
//
// Configuration is assembled from several sources. Sources are merged with
// mergo without override, so the first source that sets a field wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The entry points are [GetStructuredConfig] for the daemon and
// [GetCtlConfig] for the control tool.
package config
