// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the merged [StructuredConfig] can start the daemon.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.DB.Driver {
	case "", DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	for _, spec := range cfg.Daemon.Devices {
		if _, err := ParseDeviceSpec(spec); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDaemonConfigs, err)
		}
	}

	if cfg.Daemon.AcceptTimeout < 0 || cfg.Daemon.USBRescanInterval < 0 || cfg.Daemon.ExpirySweepInterval < 0 {
		return ErrInvalidDaemonConfigs
	}

	return nil
}

// Validate checks a config assembled for the daemon, after defaults.
func (cfg *StructuredConfig) Validate() error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}
	if cfg.App.PCID == 0 {
		return ErrInvalidAppConfigs
	}
	return nil
}

func (cfg *CtlConfig) validate() error {
	if cfg.Address == "" || cfg.Timeout <= 0 {
		return ErrInvalidCtlConfigs
	}
	return nil
}
