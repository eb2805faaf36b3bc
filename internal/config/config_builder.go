package config

import (
	"errors"
	"flag"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
)

// Defaults applied when no source sets a value.
const (
	DefaultHTTPAddress         = "localhost:14240"
	DefaultRequestTimeout      = 30 * time.Second
	DefaultAcceptTimeout       = 10 * time.Second
	DefaultUSBRescanInterval   = 2 * time.Second
	DefaultExpirySweepInterval = time.Minute
	DefaultLockDir             = "/var/lock"
	DefaultUSBWatchDir         = "/dev"
	DefaultSubjectPrefix       = "gpilot.events"
	DefaultDBDriver            = DriverSQLite
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flags, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
			break
		}
	}

	if jsonPath != "" {
		jsonCfg, err := parseJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, jsonCfg)
	}

	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	return b
}

func defaultConfig() *StructuredConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	root := filepath.Join(home, ".gpilot")

	return &StructuredConfig{
		App: App{
			Version:            "dev",
			PCID:               hostPCID(),
			ControlTokenIssuer: "gpilotd",
		},
		Storage: Storage{
			DB: DB{
				Driver: DefaultDBDriver,
				DSN:    filepath.Join(root, "gpilot.db"),
			},
			QueueDir: filepath.Join(root, "queue"),
			BaseDir:  root,
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Daemon: Daemon{
			AcceptTimeout:       DefaultAcceptTimeout,
			USBRescanInterval:   DefaultUSBRescanInterval,
			ExpirySweepInterval: DefaultExpirySweepInterval,
			LockDir:             DefaultLockDir,
			USBWatchDir:         DefaultUSBWatchDir,
		},
		Events: Events{
			SubjectPrefix: DefaultSubjectPrefix,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// hostPCID derives a stable non-zero PC id from the host name.
func hostPCID() uint32 {
	name, err := os.Hostname()
	if err != nil || name == "" {
		name = "localhost"
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	if id := h.Sum32(); id != 0 {
		return id
	}
	return 1
}
