package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

// CtlConfig is the view of the configuration used by gpilotctl.
type CtlConfig struct {
	// Address is the daemon control API host:port.
	Address string
	// TokenKey signs the bearer token sent with every request. Empty sends
	// no token.
	TokenKey string
	// TokenIssuer is the "iss" claim of issued tokens.
	TokenIssuer string
	// Timeout bounds each control request.
	Timeout time.Duration
}

// GetCtlConfig builds the control tool configuration. Values set in
// overrides (typically cobra flags) win over the environment, an optional
// JSON file at jsonPath and defaults.
func GetCtlConfig(overrides CtlConfig, jsonPath string) (*CtlConfig, error) {
	b := newConfigBuilder().withEnv()
	if jsonPath != "" {
		b.configs = append(b.configs, &StructuredConfig{JSONFilePath: jsonPath})
	}
	cfg, err := b.withJSON().withDefaults().build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	ctl := &CtlConfig{
		Address:     cfg.Server.HTTPAddress,
		TokenKey:    cfg.App.ControlTokenKey,
		TokenIssuer: cfg.App.ControlTokenIssuer,
		Timeout:     cfg.Server.RequestTimeout,
	}
	if err := mergo.Merge(ctl, overrides, mergo.WithOverride); err != nil {
		return nil, errors.Join(ErrInvalidCtlConfigs, err)
	}

	return ctl, ctl.validate()
}
