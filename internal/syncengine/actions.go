package syncengine

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-pilot/internal/dlp"
	"github.com/MKhiriev/go-pilot/models"
)

func (p *pass) apply(ctx context.Context, d Decision, local *models.LocalRecord, remote *models.Record) error {
	switch d.Action {
	case ActionNone:
		return nil

	case ActionStore, ActionPull:
		_, err := p.conduit.Store(ctx, local, remote)
		return err

	case ActionPush:
		return p.push(ctx, local)

	case ActionMarkLocalDeleted:
		return p.conduit.SetStatus(ctx, local, models.AttrDeleted)

	case ActionDeleteRemote:
		if err := p.deleteRemote(ctx, local.ID); err != nil {
			return err
		}
		return p.conduit.SetStatus(ctx, local, models.AttrDeleted)

	case ActionDropLocal:
		return p.conduit.Delete(ctx, local)

	case ActionClearLocal:
		return p.conduit.SetStatus(ctx, local, models.AttrNothing)

	case ActionDuplicate:
		return p.duplicate(ctx, local, remote)

	case ActionArchiveRemote:
		return p.conduit.ArchiveRemote(ctx, local, remote)

	case ActionArchiveRemoteDeleteLocal:
		if err := p.conduit.ArchiveRemote(ctx, local, remote); err != nil {
			return err
		}
		return p.conduit.Delete(ctx, local)

	case ActionArchiveLocal:
		if err := p.conduit.ArchiveLocal(ctx, local); err != nil {
			return err
		}
		if remote == nil {
			return nil
		}
		return p.deleteRemote(ctx, remote.ID)
	}
	return nil
}

// push writes local to the device and maps it to the id the device used.
func (p *pass) push(ctx context.Context, local *models.LocalRecord) error {
	rec, err := p.conduit.Prepare(ctx, local)
	if err != nil {
		return err
	}
	rec.ID = local.ID

	id, err := p.db.WriteRecord(ctx, rec)
	if err != nil {
		return err
	}
	p.visit(id)

	if id != local.ID {
		if err := p.conduit.SetPilotID(ctx, local, id); err != nil {
			return err
		}
	}
	if local.Archived {
		if err := p.conduit.SetArchived(ctx, local, false); err != nil {
			return err
		}
	}
	return p.conduit.SetStatus(ctx, local, models.AttrNothing)
}

// duplicate keeps both sides of a conflict: local goes to the device as a
// new record, remote is stored on the desktop as a new record. An archived
// remote is written back so the device clean up keeps it.
func (p *pass) duplicate(ctx context.Context, local *models.LocalRecord, remote *models.Record) error {
	fresh := *local
	fresh.ID = 0
	if err := p.push(ctx, &fresh); err != nil {
		return err
	}
	local.ID = fresh.ID
	local.Attr = fresh.Attr
	local.Archived = fresh.Archived

	stored, err := p.conduit.Store(ctx, nil, remote)
	if err != nil {
		return err
	}
	if !remote.Archived {
		return nil
	}

	rec, err := p.conduit.Prepare(ctx, stored)
	if err != nil {
		return err
	}
	rec.ID = remote.ID
	_, err = p.db.WriteRecord(ctx, rec)
	return err
}

// deleteRemote deletes a device record; a record already gone is fine.
// During the device walk the delete is queued instead.
func (p *pass) deleteRemote(ctx context.Context, id uint32) error {
	if id == 0 {
		return nil
	}
	if p.deferDeletes {
		p.pendingDeletes = append(p.pendingDeletes, id)
		return nil
	}
	err := p.db.DeleteRecord(ctx, id)
	if errors.Is(err, dlp.ErrNotFound) {
		return nil
	}
	return err
}
