// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package memo is the record conduit of the memo pad. The desktop copy lives
// in the desktop_records table as UTF-8 text; the handheld copy is a NUL
// terminated string in the pilot's character set.
package memo

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pilot/internal/charset"
	"github.com/MKhiriev/go-pilot/internal/conduit"
	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/store"
	"github.com/MKhiriev/go-pilot/models"
)

const (
	// Name is the registry name of the conduit.
	Name = "memo"
	// Creator is the creator id of the memo pad databases.
	Creator = "memo"
	// DBName is the memo pad database.
	DBName = "MemoDB"

	archiveSuffix = ".archive"
)

// Info is the conduit metadata.
var Info = conduit.Info{
	Name:        Name,
	Description: "Synchronizes the memo pad with the desktop database",
	Creator:     Creator,
	Databases:   []string{DBName, "MemosDB-PMem"},
	ValidSyncTypes: []models.SyncType{
		models.SyncTypeSynchronize,
		models.SyncTypeCopyToPilot,
		models.SyncTypeCopyFromPilot,
		models.SyncTypeMergeToPilot,
		models.SyncTypeMergeFromPilot,
	},
	DefaultSyncType: models.SyncTypeSynchronize,
	HasSettings:     true,
	Capability:      conduit.CapabilityRecord,
}

// Factory builds memo conduits.
var Factory = conduit.NewFactory(Info, New)

// Conduit keeps memos of one pilot.
type Conduit struct {
	records store.DesktopRecordRepository
	codec   *charset.Codec
	pilot   models.Pilot
	db      string
	logger  *logger.Logger
}

// New returns a memo conduit for pilot. The "charset" setting overrides the
// pilot's character set.
func New(_ context.Context, deps conduit.Deps, pilot models.Pilot, cfg models.ConduitConfig) (conduit.Conduit, error) {
	if deps.Records == nil {
		return nil, errors.New("memo: no desktop record repository")
	}
	codec, err := charset.Lookup(cfg.Setting("charset", pilot.Charset))
	if err != nil {
		return nil, err
	}
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Conduit{records: deps.Records, codec: codec, pilot: pilot, db: DBName, logger: log}, nil
}

func (c *Conduit) Info() conduit.Info { return Info }

func (c *Conduit) Destroy(context.Context) error { return nil }

func (c *Conduit) PreSync(_ context.Context, sc *conduit.SyncContext) error {
	c.db = sc.DB.Name
	c.logger.Debug().
		Str("func", "memo.PreSync").
		Uint32("pilot_id", c.pilot.ID).
		Str("db", c.db).
		Str("sync_type", sc.SyncType.String()).
		Bool("slow", sc.Slow).
		Msg("memo sync starting")
	return nil
}

func (c *Conduit) PostSync(ctx context.Context, _ *conduit.SyncContext) error {
	n, err := c.records.CountMapped(ctx, c.pilot.ID, c.db)
	if err != nil {
		return err
	}
	c.logger.Debug().Str("func", "memo.PostSync").Str("db", c.db).Int("mapped", n).Msg("memo sync finished")
	return nil
}

func (c *Conduit) Match(ctx context.Context, remoteID uint32) (*models.LocalRecord, error) {
	rec, err := c.records.GetByRemoteID(ctx, c.pilot.ID, c.db, remoteID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Conduit) Records(ctx context.Context) ([]*models.LocalRecord, error) {
	list, err := c.records.List(ctx, c.pilot.ID, c.db)
	if err != nil {
		return nil, err
	}
	out := make([]*models.LocalRecord, len(list))
	for i := range list {
		out[i] = &list[i]
	}
	return out, nil
}

func (c *Conduit) MappedCount(ctx context.Context, db string) (int, error) {
	return c.records.CountMapped(ctx, c.pilot.ID, db)
}

func (c *Conduit) Store(ctx context.Context, local *models.LocalRecord, remote *models.Record) (*models.LocalRecord, error) {
	rec, err := c.toDesktop(remote)
	if err != nil {
		return nil, err
	}

	if local != nil {
		stored := &models.LocalRecord{LocalID: local.LocalID, Record: rec}
		if err := c.records.Update(ctx, *stored); err != nil {
			return nil, err
		}
		return stored, nil
	}

	id, err := c.records.Insert(ctx, c.pilot.ID, c.db, rec)
	if err != nil {
		return nil, err
	}
	return &models.LocalRecord{LocalID: id, Record: rec}, nil
}

func (c *Conduit) ArchiveRemote(ctx context.Context, local *models.LocalRecord, remote *models.Record) error {
	rec, err := c.toDesktop(remote)
	if err != nil {
		return err
	}
	if err := c.archive(ctx, rec); err != nil {
		return err
	}
	if local != nil {
		return c.Delete(ctx, local)
	}
	return nil
}

func (c *Conduit) ArchiveLocal(ctx context.Context, local *models.LocalRecord) error {
	if err := c.archive(ctx, local.Record); err != nil {
		return err
	}
	return c.Delete(ctx, local)
}

func (c *Conduit) SetStatus(ctx context.Context, local *models.LocalRecord, attr models.RecordAttr) error {
	local.Attr = attr
	return c.records.Update(ctx, *local)
}

func (c *Conduit) SetPilotID(ctx context.Context, local *models.LocalRecord, id uint32) error {
	local.ID = id
	return c.records.Update(ctx, *local)
}

func (c *Conduit) SetArchived(ctx context.Context, local *models.LocalRecord, archived bool) error {
	local.Archived = archived
	return c.records.Update(ctx, *local)
}

func (c *Conduit) Delete(ctx context.Context, local *models.LocalRecord) error {
	err := c.records.Delete(ctx, local.LocalID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil
	}
	return err
}

func (c *Conduit) Compare(_ context.Context, local *models.LocalRecord, remote *models.Record) (bool, error) {
	rec, err := c.toDesktop(remote)
	if err != nil {
		return false, err
	}
	return local.Record.SameContent(&rec), nil
}

func (c *Conduit) Prepare(_ context.Context, local *models.LocalRecord) (models.Record, error) {
	payload, err := c.codec.Encode(string(local.Payload))
	if err != nil {
		return models.Record{}, err
	}
	return models.Record{
		ID:       local.ID,
		Category: local.Category,
		Payload:  payload,
		Attr:     models.AttrNothing,
		Secret:   local.Secret,
	}, nil
}

func (c *Conduit) DeleteAll(ctx context.Context) error {
	return c.records.DeleteAll(ctx, c.pilot.ID, c.db)
}

func (c *Conduit) Purge(ctx context.Context) error {
	list, err := c.records.List(ctx, c.pilot.ID, c.db)
	if err != nil {
		return err
	}
	for _, rec := range list {
		if rec.Attr != models.AttrDeleted && !rec.Archived {
			continue
		}
		if err := c.records.Delete(ctx, rec.LocalID); err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return fmt.Errorf("purge memo %d: %w", rec.LocalID, err)
		}
	}
	return nil
}

// Archived returns the memos moved to the archive.
func (c *Conduit) Archived(ctx context.Context) ([]models.LocalRecord, error) {
	return c.records.List(ctx, c.pilot.ID, c.db+archiveSuffix)
}

func (c *Conduit) archive(ctx context.Context, rec models.Record) error {
	rec.Attr = models.AttrNothing
	rec.Archived = true
	_, err := c.records.Insert(ctx, c.pilot.ID, c.db+archiveSuffix, rec)
	return err
}

// toDesktop converts a handheld record to its desktop form with clear flags.
func (c *Conduit) toDesktop(remote *models.Record) (models.Record, error) {
	text, err := c.codec.Decode(remote.Payload)
	if err != nil {
		return models.Record{}, err
	}
	return models.Record{
		ID:       remote.ID,
		Category: remote.Category,
		Payload:  []byte(text),
		Attr:     models.AttrNothing,
		Secret:   remote.Secret,
	}, nil
}
