package syncengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pilot/internal/dlp"
	"github.com/MKhiriev/go-pilot/models"
)

// eachRemote calls fn for every device record in index order.
func (p *pass) eachRemote(ctx context.Context, fn func(remote *models.Record) error) error {
	total, err := p.db.RecordCount(ctx)
	if err != nil {
		return fmt.Errorf("count records: %w", err)
	}

	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		remote, err := p.db.ReadRecordByIndex(ctx, i)
		if errors.Is(err, dlp.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read record %d: %w", i, err)
		}
		p.progress(i+1, total)
		p.visit(remote.ID)

		if err := fn(remote); err != nil {
			p.fail(remote.ID, err)
		}
	}
}

// copyFromPilot replaces the desktop copy with the device database.
func (p *pass) copyFromPilot(ctx context.Context) error {
	if err := p.conduit.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear desktop records: %w", err)
	}

	return p.eachRemote(ctx, func(remote *models.Record) error {
		switch {
		case remote.Deleted():
			return nil
		case remote.Archived:
			p.report.record(Decision{Action: ActionArchiveRemote})
			return p.conduit.ArchiveRemote(ctx, nil, remote)
		default:
			p.report.record(Decision{Action: ActionStore})
			_, err := p.conduit.Store(ctx, nil, remote)
			return err
		}
	})
}

// copyToPilot replaces the device database with the desktop copy.
func (p *pass) copyToPilot(ctx context.Context) error {
	if err := p.db.DeleteAllRecords(ctx); err != nil {
		return fmt.Errorf("clear device records: %w", err)
	}

	records, err := p.conduit.Records(ctx)
	if err != nil {
		return fmt.Errorf("list desktop records: %w", err)
	}
	for i, local := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.progress(i+1, len(records))

		var d Decision
		switch {
		case local.Deleted():
			d.Action = ActionDropLocal
			err = p.conduit.Delete(ctx, local)
		case local.Archived:
			d.Action = ActionArchiveLocal
			err = p.conduit.ArchiveLocal(ctx, local)
		default:
			d.Action = ActionPush
			err = p.push(ctx, local)
		}
		p.report.record(d)
		if err != nil {
			p.fail(local.ID, err)
		}
	}
	return nil
}

// mergeFromPilot adds device records to the desktop and refreshes the
// desktop copies that differ. Nothing is deleted on either side.
func (p *pass) mergeFromPilot(ctx context.Context) error {
	return p.eachRemote(ctx, func(remote *models.Record) error {
		if remote.Deleted() || remote.Archived {
			return nil
		}
		local, err := p.conduit.Match(ctx, remote.ID)
		if err != nil {
			return err
		}
		if local != nil {
			same, err := p.conduit.Compare(ctx, local, remote)
			if err != nil || same {
				return err
			}
		}
		p.report.record(Decision{Action: ActionPull})
		_, err = p.conduit.Store(ctx, local, remote)
		return err
	})
}

// mergeToPilot writes desktop records the device lacks or holds differently.
// Nothing is deleted on either side.
func (p *pass) mergeToPilot(ctx context.Context) error {
	records, err := p.conduit.Records(ctx)
	if err != nil {
		return fmt.Errorf("list desktop records: %w", err)
	}

	for i, local := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.progress(i+1, len(records))
		if local.Deleted() || local.Archived {
			continue
		}

		if err := p.mergeOneToPilot(ctx, local); err != nil {
			p.fail(local.ID, err)
		}
	}
	return nil
}

func (p *pass) mergeOneToPilot(ctx context.Context, local *models.LocalRecord) error {
	if !local.DesktopOnly() {
		remote, err := p.db.ReadRecordByID(ctx, local.ID)
		switch {
		case errors.Is(err, dlp.ErrNotFound):
		case err != nil:
			return err
		default:
			same, err := p.conduit.Compare(ctx, local, remote)
			if err != nil || same {
				return err
			}
		}
	}
	p.report.record(Decision{Action: ActionPush})
	return p.push(ctx, local)
}
