// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package backup is the conduit copying whole handheld databases into the
// pilot's backup directory and installing them back on restore.
package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-pilot/internal/conduit"
	"github.com/MKhiriev/go-pilot/internal/dlp"
	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/pdb"
	"github.com/MKhiriev/go-pilot/internal/store"
	"github.com/MKhiriev/go-pilot/models"
)

// Name is the registry name of the conduit.
const Name = "backup"

// Settings understood by the conduit.
const (
	SettingDir         = "dir"
	SettingOnlyChanged = "only_changed"
	SettingExclude     = "exclude"
)

// Info is the conduit metadata.
var Info = conduit.Info{
	Name:             Name,
	Description:      "Backs up every handheld database to the desktop",
	HasSettings:      true,
	Capability:       conduit.CapabilityBackup,
	EnabledByDefault: true,
}

// Factory builds backup conduits.
var Factory = conduit.NewFactory(Info, New)

// Conduit backs up the databases of one pilot.
type Conduit struct {
	cache       store.DatabaseCacheRepository
	pilot       models.Pilot
	dir         string
	onlyChanged bool
	exclude     []string
	previous    map[string]models.DBInfo
	now         func() time.Time
	logger      *logger.Logger
}

// New returns a backup conduit writing to <basedir>/backup unless the "dir"
// setting names another directory.
func New(ctx context.Context, deps conduit.Deps, pilot models.Pilot, cfg models.ConduitConfig) (conduit.Conduit, error) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	c := &Conduit{
		cache:       deps.Cache,
		pilot:       pilot,
		dir:         cfg.Setting(SettingDir, DefaultDir(pilot)),
		onlyChanged: cfg.Setting(SettingOnlyChanged, "false") == "true",
		previous:    make(map[string]models.DBInfo),
		now:         time.Now,
		logger:      log,
	}
	for _, name := range strings.Split(cfg.Setting(SettingExclude, ""), ",") {
		if name = strings.TrimSpace(name); name != "" {
			c.exclude = append(c.exclude, name)
		}
	}

	if c.onlyChanged && c.cache != nil {
		cached, err := c.cache.List(ctx, pilot.ID)
		if err != nil {
			return nil, fmt.Errorf("load database cache: %w", err)
		}
		for _, db := range cached {
			c.previous[db.Name] = db
		}
	}
	return c, nil
}

// DefaultDir returns the backup directory of pilot.
func DefaultDir(pilot models.Pilot) string {
	return filepath.Join(pilot.BaseDir, "backup")
}

// Dir returns the directory backups are written to.
func (c *Conduit) Dir() string { return c.dir }

func (c *Conduit) Info() conduit.Info { return Info }

func (c *Conduit) Destroy(context.Context) error { return nil }

// ShouldBackup skips excluded databases and, with only_changed set, those
// whose modification number matches the previous session and whose backup
// file exists.
func (c *Conduit) ShouldBackup(db models.DBInfo) bool {
	if slices.Contains(c.exclude, db.Name) {
		return false
	}
	if !c.onlyChanged {
		return true
	}
	prev, ok := c.previous[db.Name]
	if !ok || prev.ModNum != db.ModNum {
		return true
	}
	_, err := os.Stat(filepath.Join(c.dir, pdb.FileName(db)))
	return err != nil
}

func (c *Conduit) Backup(ctx context.Context, sess dlp.Session, db models.DBInfo) error {
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	f, err := pdb.Fetch(ctx, sess, db)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", db.Name, err)
	}
	path := filepath.Join(c.dir, pdb.FileName(db))
	if err := pdb.WriteFile(path, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if c.cache != nil {
		if err := c.cache.MarkBackedUp(ctx, c.pilot.ID, db.Name, c.now().UTC()); err != nil {
			c.logger.Warn().Err(err).Str("func", "backup.Backup").Str("db", db.Name).Msg("failed to record backup time")
		}
	}

	c.logger.Debug().
		Str("func", "backup.Backup").
		Uint32("pilot_id", c.pilot.ID).
		Str("db", db.Name).
		Str("path", path).
		Int("records", len(f.Records)).
		Int("resources", len(f.Resources)).
		Msg("database backed up")
	return nil
}

// Restore installs every image found in dir. A file that fails is logged
// and the others are still installed; the failures are returned joined.
func (c *Conduit) Restore(ctx context.Context, sess dlp.Session, dir string, progress func(current, total int)) error {
	if dir == "" {
		dir = c.dir
	}

	files, err := Images(dir)
	if err != nil {
		return err
	}

	var errs []error
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		f, err := pdb.ReadFile(path)
		if err == nil {
			err = pdb.Install(ctx, sess, f)
		}
		if err != nil {
			c.logger.Warn().Err(err).Str("func", "backup.Restore").Str("path", path).Msg("failed to restore database")
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(path), err))
		}

		if progress != nil {
			progress(i+1, len(files))
		}
	}
	return errors.Join(errs...)
}

// Images lists the database images of dir in name order.
func Images(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !pdb.IsImage(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	slices.Sort(files)
	return files, nil
}
