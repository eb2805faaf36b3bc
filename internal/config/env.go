// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces the daemon's variables. GPILOT_LOG_LEVEL wins over
// LOG_LEVEL when both are set.
const EnvPrefix = "GPILOT_"

// parseEnv fills cfg from the plain variable names first and then from the
// prefixed ones. Unset variables leave fields untouched.
func parseEnv(cfg any) error {
	for _, prefix := range []string{"", EnvPrefix} {
		if err := env.ParseWithOptions(cfg, env.Options{Prefix: prefix}); err != nil {
			return fmt.Errorf("error getting env configs (prefix %q): %w", prefix, err)
		}
	}

	return nil
}
