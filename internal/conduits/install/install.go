// Package install is the file conduit writing database images queued by
// install requests onto the handheld.
package install

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pilot/internal/conduit"
	"github.com/MKhiriev/go-pilot/internal/dlp"
	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/pdb"
	"github.com/MKhiriev/go-pilot/models"
)

// Name is the registry name of the conduit.
const Name = "install"

// Info is the conduit metadata.
var Info = conduit.Info{
	Name:             Name,
	Description:      "Installs queued applications and databases",
	Capability:       conduit.CapabilityFile,
	EnabledByDefault: true,
}

// Factory builds install conduits.
var Factory = conduit.NewFactory(Info, New)

// Conduit installs files for one pilot.
type Conduit struct {
	pilot  models.Pilot
	logger *logger.Logger
}

func New(_ context.Context, deps conduit.Deps, pilot models.Pilot, _ models.ConduitConfig) (conduit.Conduit, error) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Conduit{pilot: pilot, logger: log}, nil
}

func (c *Conduit) Info() conduit.Info { return Info }

func (c *Conduit) Destroy(context.Context) error { return nil }

// Install writes the image at file to the handheld, replacing a database of
// the same name.
func (c *Conduit) Install(ctx context.Context, sess dlp.Session, file string) error {
	f, err := pdb.ReadFile(file)
	if err != nil {
		return err
	}
	if err := pdb.Install(ctx, sess, f); err != nil {
		return fmt.Errorf("install %s: %w", f.Info.Name, err)
	}

	c.logger.Info().
		Str("func", "install.Install").
		Uint32("pilot_id", c.pilot.ID).
		Str("db", f.Info.Name).
		Str("file", file).
		Msg("database installed")
	return nil
}
