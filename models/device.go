// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"strings"
	"time"
)

// DeviceKind is the physical transport of a cradle.
type DeviceKind string

const (
	DeviceSerial    DeviceKind = "serial"
	DeviceUSB       DeviceKind = "usb"
	DeviceIrDA      DeviceKind = "irda"
	DeviceNetwork   DeviceKind = "network"
	DeviceBluetooth DeviceKind = "bluetooth"
)

// ErrUnknownDeviceKind is returned by ParseDeviceKind.
var ErrUnknownDeviceKind = errors.New("unknown device kind")

// ParseDeviceKind parses a configured transport name.
func ParseDeviceKind(s string) (DeviceKind, error) {
	switch k := DeviceKind(strings.ToLower(strings.TrimSpace(s))); k {
	case DeviceSerial, DeviceUSB, DeviceIrDA, DeviceNetwork, DeviceBluetooth:
		return k, nil
	case "ir":
		return DeviceIrDA, nil
	case "bt":
		return DeviceBluetooth, nil
	}
	return "", ErrUnknownDeviceKind
}

// DefaultNetworkPort is the TCP port network hotsync listens on.
const DefaultNetworkPort = 14238

// Device is the configuration of one cradle (a Device Transport).
//
// Port is a device path for serial, IrDA and USB cradles, and the RFCOMM
// channel for Bluetooth. Host and NetPort apply to network cradles only;
// Host may be a name, an IP address or "any".
type Device struct {
	Name     string        `json:"name"`
	Kind     DeviceKind    `json:"kind"`
	Port     string        `json:"port,omitempty"`
	Host     string        `json:"host,omitempty"`
	NetPort  int           `json:"net_port,omitempty"`
	Speed    int           `json:"speed,omitempty"`
	Timeout  time.Duration `json:"timeout"`
	Position int           `json:"position"`
}

// Polled reports whether the cradle is a file-backed device that must be
// opened and polled (serial, IrDA, USB).
func (d Device) Polled() bool {
	return d.Kind == DeviceSerial || d.Kind == DeviceIrDA || d.Kind == DeviceUSB
}
