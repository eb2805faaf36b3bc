package pdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pilot/internal/dlp"
	"github.com/MKhiriev/go-pilot/models"
)

// Fetch reads the whole of db from the handheld.
func Fetch(ctx context.Context, sess dlp.Session, db models.DBInfo) (*File, error) {
	h, err := sess.OpenDB(ctx, db.Name, dlp.ModeRead|dlp.ModeSecret)
	if err != nil {
		return nil, err
	}
	defer h.Close(ctx)

	f := &File{Info: db}

	app, err := h.ReadAppBlock(ctx)
	switch {
	case err == nil:
		f.AppBlock = app
	case !errors.Is(err, dlp.ErrNotFound):
		return nil, fmt.Errorf("read app block of %s: %w", db.Name, err)
	}

	for i := 0; ; i++ {
		if db.Resource() {
			res, err := h.ReadResourceByIndex(ctx, i)
			if errors.Is(err, dlp.ErrNotFound) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("read resource %d of %s: %w", i, db.Name, err)
			}
			f.Resources = append(f.Resources, res)
			continue
		}

		rec, err := h.ReadRecordByIndex(ctx, i)
		if errors.Is(err, dlp.ErrNotFound) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record %d of %s: %w", i, db.Name, err)
		}
		f.Records = append(f.Records, *rec)
	}
	return f, nil
}

// Install writes f to the handheld, replacing a database of the same name.
// Records flagged deleted are not written.
func Install(ctx context.Context, sess dlp.Session, f *File) error {
	if err := sess.DeleteDB(ctx, f.Info.Name); err != nil && !errors.Is(err, dlp.ErrNotFound) {
		return fmt.Errorf("delete %s: %w", f.Info.Name, err)
	}

	h, err := sess.CreateDB(ctx, f.Info)
	if err != nil {
		return fmt.Errorf("create %s: %w", f.Info.Name, err)
	}
	defer h.Close(ctx)

	if len(f.AppBlock) > 0 {
		if err := h.WriteAppBlock(ctx, f.AppBlock); err != nil {
			return fmt.Errorf("write app block of %s: %w", f.Info.Name, err)
		}
	}
	for _, res := range f.Resources {
		if err := h.WriteResource(ctx, res); err != nil {
			return fmt.Errorf("write resource %s/%d of %s: %w", res.Type, res.ID, f.Info.Name, err)
		}
	}
	for _, rec := range f.Records {
		if rec.Deleted() {
			continue
		}
		if _, err := h.WriteRecord(ctx, rec); err != nil {
			return fmt.Errorf("write record %d of %s: %w", rec.ID, f.Info.Name, err)
		}
	}
	return nil
}
