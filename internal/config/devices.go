package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-pilot/models"
)

// ParseDeviceSpec parses a cradle spec of the form
//
//	[name=]kind:port[@speed]
//
// Network cradles take "network:host[:port]" where host may be "any";
// Bluetooth cradles take the RFCOMM channel as port.
func ParseDeviceSpec(spec string) (models.Device, error) {
	var dev models.Device

	s := strings.TrimSpace(spec)
	if name, rest, ok := strings.Cut(s, "="); ok {
		dev.Name, s = strings.TrimSpace(name), rest
	}

	kind, rest, ok := strings.Cut(s, ":")
	if !ok {
		return dev, fmt.Errorf("%w: %q", ErrInvalidDeviceSpec, spec)
	}
	k, err := models.ParseDeviceKind(kind)
	if err != nil {
		return dev, fmt.Errorf("%w: %q: %w", ErrInvalidDeviceSpec, spec, err)
	}
	dev.Kind = k

	switch k {
	case models.DeviceNetwork:
		dev.NetPort = models.DefaultNetworkPort
		host, port, hasPort := strings.Cut(rest, ":")
		dev.Host = host
		if hasPort {
			n, err := strconv.Atoi(port)
			if err != nil || n < 1 || n > 65535 {
				return dev, fmt.Errorf("%w: bad port in %q", ErrInvalidDeviceSpec, spec)
			}
			dev.NetPort = n
		}
		if dev.Host == "" {
			dev.Host = "any"
		}
	default:
		port, speed, hasSpeed := strings.Cut(rest, "@")
		if port == "" {
			return dev, fmt.Errorf("%w: empty port in %q", ErrInvalidDeviceSpec, spec)
		}
		dev.Port = port
		if hasSpeed {
			n, err := strconv.Atoi(speed)
			if err != nil || n <= 0 {
				return dev, fmt.Errorf("%w: bad speed in %q", ErrInvalidDeviceSpec, spec)
			}
			dev.Speed = n
		}
	}

	if dev.Name == "" {
		dev.Name = string(dev.Kind) + ":" + rest
	}
	return dev, nil
}

// DeviceList parses every configured cradle, assigning positions in
// configuration order.
func (d Daemon) DeviceList() ([]models.Device, error) {
	out := make([]models.Device, 0, len(d.Devices))
	for i, spec := range d.Devices {
		dev, err := ParseDeviceSpec(spec)
		if err != nil {
			return nil, err
		}
		dev.Position = i
		dev.Timeout = d.AcceptTimeout
		out = append(out, dev)
	}
	return out, nil
}
