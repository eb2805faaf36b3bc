package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pilot/models"
)

func TestParseDeviceSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    models.Device
		wantErr bool
	}{
		{
			name: "usb",
			spec: "usb:/dev/ttyUSB0",
			want: models.Device{Name: "usb:/dev/ttyUSB0", Kind: models.DeviceUSB, Port: "/dev/ttyUSB0"},
		},
		{
			name: "named serial with speed",
			spec: "cradle=serial:/dev/ttyS0@57600",
			want: models.Device{Name: "cradle", Kind: models.DeviceSerial, Port: "/dev/ttyS0", Speed: 57600},
		},
		{
			name: "network default port",
			spec: "network:any",
			want: models.Device{Name: "network:any", Kind: models.DeviceNetwork, Host: "any", NetPort: models.DefaultNetworkPort},
		},
		{
			name: "network explicit port",
			spec: "net1=network:192.168.1.5:15000",
			want: models.Device{Name: "net1", Kind: models.DeviceNetwork, Host: "192.168.1.5", NetPort: 15000},
		},
		{
			name: "bluetooth alias",
			spec: "bt:3",
			want: models.Device{Name: "bluetooth:3", Kind: models.DeviceBluetooth, Port: "3"},
		},
		{name: "no kind", spec: "/dev/ttyS0", wantErr: true},
		{name: "unknown kind", spec: "floppy:/dev/fd0", wantErr: true},
		{name: "empty port", spec: "usb:", wantErr: true},
		{name: "bad speed", spec: "serial:/dev/ttyS0@fast", wantErr: true},
		{name: "bad network port", spec: "network:any:70000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDeviceSpec(tt.spec)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDeviceSpec)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDaemon_DeviceList(t *testing.T) {
	d := Daemon{Devices: []string{"usb:/dev/ttyUSB0", "network:any"}, AcceptTimeout: 5 * time.Second}

	list, err := d.DeviceList()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 0, list[0].Position)
	assert.Equal(t, 1, list[1].Position)
	assert.Equal(t, 5*time.Second, list[1].Timeout)

	_, err = Daemon{Devices: []string{"bogus"}}.DeviceList()
	assert.Error(t, err)
}
