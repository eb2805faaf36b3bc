// Package conduits registers the conduits built into the daemon.
package conduits

import (
	"github.com/MKhiriev/go-pilot/internal/conduit"
	"github.com/MKhiriev/go-pilot/internal/conduits/backup"
	"github.com/MKhiriev/go-pilot/internal/conduits/install"
	"github.com/MKhiriev/go-pilot/internal/conduits/memo"
)

// RegisterBuiltins adds every built-in conduit to reg.
func RegisterBuiltins(reg *conduit.Registry) error {
	for _, f := range []conduit.Factory{memo.Factory, backup.Factory, install.Factory} {
		if err := reg.Register(f.Info().Name, f); err != nil {
			return err
		}
	}
	return nil
}
