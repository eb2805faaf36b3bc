package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// deviceList collects repeated -device flags.
type deviceList []string

func (d *deviceList) String() string { return strings.Join(*d, ",") }

func (d *deviceList) Set(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("empty device spec")
	}
	*d = append(*d, s)
	return nil
}

// parseFlags parses daemon flags from args into a fresh config.
//
// Flags:
//
//	-a control API address in format [host]:[port]
//	-d database DSN
//	-driver database driver (sqlite, postgres)
//	-q install queue directory
//	-base-dir parent of per-handheld directories
//	-c/-config json file path with configs
//	-device cradle spec, repeatable (e.g. usb:/dev/ttyUSB0)
//	-accept-timeout wait for a handheld after a cradle wakes up
//	-lock-dir directory of LCK.. lock files
//	-pc-id sync stamp of this desktop
//	-token-key control API token signing key
//	-nats-url NATS server for outbound events
//	-metrics expose prometheus metrics
//	-log-level log level
//	-log-file rotating log file path
func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN, databaseDriver string
	var queueDir, baseDir string
	var jsonConfigPath string
	var devices deviceList
	var acceptTimeout time.Duration
	var lockDir string
	var pcID uint
	var tokenKey string
	var natsURL string
	var metricsEnabled bool
	var logLevel, logFile string

	fs.Var(&serverAddress, "a", "Control API address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "driver", "", "Database driver (sqlite, postgres)")
	fs.StringVar(&queueDir, "q", "", "Install queue directory")
	fs.StringVar(&baseDir, "base-dir", "", "Parent of per-handheld directories")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.Var(&devices, "device", "Cradle spec kind:port, repeatable")
	fs.DurationVar(&acceptTimeout, "accept-timeout", 0, "Handheld accept timeout (e.g., 10s)")
	fs.StringVar(&lockDir, "lock-dir", "", "Lock file directory")
	fs.UintVar(&pcID, "pc-id", 0, "Sync stamp of this desktop")
	fs.StringVar(&tokenKey, "token-key", "", "Control API token signing key")
	fs.StringVar(&natsURL, "nats-url", "", "NATS server URL")
	fs.BoolVar(&metricsEnabled, "metrics", false, "Expose prometheus metrics")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logFile, "log-file", "", "Rotating log file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			PCID:            uint32(pcID),
			ControlTokenKey: tokenKey,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
			QueueDir: queueDir,
			BaseDir:  baseDir,
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Daemon: Daemon{
			Devices:       devices,
			AcceptTimeout: acceptTimeout,
			LockDir:       lockDir,
		},
		Events: Events{
			NATSURL: natsURL,
		},
		Metrics: Metrics{
			Enabled: metricsEnabled,
		},
		Log: Log{
			Level: logLevel,
			File:  logFile,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// An unset address renders as the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
