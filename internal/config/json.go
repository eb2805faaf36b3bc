package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		Version            string `json:"version"`
		PCID               uint32 `json:"pc_id"`
		ControlTokenKey    string `json:"control_token_key"`
		ControlTokenIssuer string `json:"control_token_issuer"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
		QueueDir string `json:"queue_dir"`
		BaseDir  string `json:"base_dir"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Daemon struct {
		Devices             []string `json:"devices"`
		AcceptTimeout       Duration `json:"accept_timeout"`
		USBRescanInterval   Duration `json:"usb_rescan_interval"`
		ExpirySweepInterval Duration `json:"expiry_sweep_interval"`
		LockDir             string   `json:"lock_dir"`
		USBWatchDir         string   `json:"usb_watch_dir"`
	} `json:"daemon,omitempty"`

	Events struct {
		NATSURL       string `json:"nats_url"`
		SubjectPrefix string `json:"subject_prefix"`
	} `json:"events,omitempty"`

	Metrics struct {
		Enabled bool `json:"enabled"`
	} `json:"metrics,omitempty"`

	Log struct {
		Level string `json:"level"`
		File  string `json:"file"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:            jsonCfg.App.Version,
			PCID:               jsonCfg.App.PCID,
			ControlTokenKey:    jsonCfg.App.ControlTokenKey,
			ControlTokenIssuer: jsonCfg.App.ControlTokenIssuer,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			QueueDir: jsonCfg.Storage.QueueDir,
			BaseDir:  jsonCfg.Storage.BaseDir,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Daemon: Daemon{
			Devices:             jsonCfg.Daemon.Devices,
			AcceptTimeout:       time.Duration(jsonCfg.Daemon.AcceptTimeout),
			USBRescanInterval:   time.Duration(jsonCfg.Daemon.USBRescanInterval),
			ExpirySweepInterval: time.Duration(jsonCfg.Daemon.ExpirySweepInterval),
			LockDir:             jsonCfg.Daemon.LockDir,
			USBWatchDir:         jsonCfg.Daemon.USBWatchDir,
		},
		Events: Events{
			NATSURL:       jsonCfg.Events.NATSURL,
			SubjectPrefix: jsonCfg.Events.SubjectPrefix,
		},
		Metrics: Metrics{
			Enabled: jsonCfg.Metrics.Enabled,
		},
		Log: Log{
			Level: jsonCfg.Log.Level,
			File:  jsonCfg.Log.File,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
