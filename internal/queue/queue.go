// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package queue is the persisted request queue of the daemon.
//
// Requests are bucketed by owning handheld, or by the "system" bucket for
// cradle-scoped requests. Every call is synchronous against the backing
// repository; the queue mutex serializes the daemon loop and control
// handlers that cancel requests from outside the active session.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/internal/store"
	"github.com/MKhiriev/go-pilot/models"
)

// Queue stores, lists and purges queued requests.
type Queue struct {
	mu     sync.Mutex
	repo   store.RequestRepository
	dir    string
	logger *logger.Logger
	now    func() time.Time
}

// New returns a queue persisting to repo. Install payloads are copied into
// dir.
func New(repo store.RequestRepository, dir string, log *logger.Logger) *Queue {
	return &Queue{
		repo:   repo,
		dir:    dir,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Dir returns the directory install payloads are copied into.
func (q *Queue) Dir() string { return q.dir }

// Store persists req and returns it with Handle, Seq, ClientID and
// CreatedAt filled in. Install payloads are copied into the queue directory
// first, so the caller may remove its own file afterwards.
func (q *Queue) Store(ctx context.Context, req models.Request) (models.Request, error) {
	if req.Type.CradleScoped() != req.Bucket.System {
		return models.Request{}, fmt.Errorf("%w: %s request in bucket %s", ErrInvalidRequest, req.Type, req.Bucket)
	}
	if req.Bucket.System && req.Cradle == "" {
		return models.Request{}, fmt.Errorf("%w: cradle is required", ErrInvalidRequest)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if req.Type == models.RequestInstall {
		copied, err := q.importFile(req.Params.Filename)
		if err != nil {
			return models.Request{}, err
		}
		req.Params.Filename = copied
	}

	if req.ClientID == "" {
		req.ClientID = uuid.NewString()
	}
	if req.Persistence == "" {
		req.Persistence = models.PersistencePersistent
	}
	req.CreatedAt = q.now()
	req.ExpiresAt = nil
	if req.Persistence == models.PersistenceImmediate && req.Timeout > 0 {
		exp := req.CreatedAt.Add(req.Timeout)
		req.ExpiresAt = &exp
	}

	params, err := json.Marshal(req.Params)
	if err != nil {
		return models.Request{}, fmt.Errorf("encode request params: %w", err)
	}

	row, err := q.repo.Insert(ctx, store.RequestRow{
		Bucket:    req.Bucket.String(),
		Type:      string(req.Type),
		Cradle:    req.Cradle,
		ClientID:  req.ClientID,
		TimeoutMS: req.Timeout.Milliseconds(),
		ExpiresAt: req.ExpiresAt,
		CreatedAt: req.CreatedAt,
		Params:    params,
	}, req.Bucket.Handle(0))
	if err != nil {
		if req.Type == models.RequestInstall {
			q.release(req)
		}
		return models.Request{}, err
	}

	req.Handle = row.Handle
	req.Seq = row.Seq

	q.logger.Debug().
		Str("func", "Queue.Store").
		Str("bucket", row.Bucket).
		Str("type", row.Type).
		Int64("handle", row.Handle).
		Msg("request queued")

	return req, nil
}

// LoadAll returns the requests of bucket in FIFO order. With includeAll the
// type filter is ignored; otherwise only requests of type typ are returned.
// Malformed rows are skipped.
func (q *Queue) LoadAll(ctx context.Context, bucket models.Bucket, typ models.RequestType, includeAll bool) ([]models.Request, error) {
	filter := store.RequestFilter{Bucket: bucket.String()}
	if !includeAll {
		filter.Types = []string{string(typ)}
	}
	return q.list(ctx, filter)
}

// LoadCradle returns the cradle-scoped requests addressed to cradle.
func (q *Queue) LoadCradle(ctx context.Context, cradle string) ([]models.Request, error) {
	all, err := q.list(ctx, store.RequestFilter{Bucket: models.SystemBucket})
	if err != nil {
		return nil, err
	}

	out := all[:0]
	for _, r := range all {
		if r.Cradle == cradle {
			out = append(out, r)
		}
	}
	return out, nil
}

// List returns every queued request of every bucket.
func (q *Queue) List(ctx context.Context) ([]models.Request, error) {
	return q.list(ctx, store.RequestFilter{})
}

func (q *Queue) list(ctx context.Context, filter store.RequestFilter) ([]models.Request, error) {
	q.mu.Lock()
	rows, err := q.repo.List(ctx, filter)
	q.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := make([]models.Request, 0, len(rows))
	for _, row := range rows {
		req, err := decode(row)
		if err != nil {
			q.logger.Debug().Err(err).
				Str("func", "Queue.list").
				Int64("handle", row.Handle).
				Msg("skipping malformed request")
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

// Get returns one request by handle.
func (q *Queue) Get(ctx context.Context, handle int64) (models.Request, error) {
	q.mu.Lock()
	row, err := q.repo.Get(ctx, handle)
	q.mu.Unlock()
	if errors.Is(err, store.ErrRequestNotFound) {
		return models.Request{}, ErrNotFound
	}
	if err != nil {
		return models.Request{}, err
	}
	return decode(row)
}

// Purge deletes the request, releases the resources it owns and decrements
// its bucket counter. ErrNotFound means the request was already removed.
func (q *Queue) Purge(ctx context.Context, handle int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, err := q.purge(ctx, handle)
	return err
}

// Remove cancels a request from outside the active session. It behaves like
// Purge; a session already working on the request keeps going, but its
// own Purge then reports ErrNotFound.
func (q *Queue) Remove(ctx context.Context, handle int64) error {
	return q.Purge(ctx, handle)
}

// purge returns the deleted request. For a row that does not decode only
// the handle, sequence and bucket are filled in.
func (q *Queue) purge(ctx context.Context, handle int64) (models.Request, error) {
	row, err := q.repo.Delete(ctx, handle)
	if errors.Is(err, store.ErrRequestNotFound) {
		return models.Request{}, ErrNotFound
	}
	if err != nil {
		return models.Request{}, err
	}

	req, err := decode(row)
	if err != nil {
		bucket, _ := parseBucket(row.Bucket)
		return models.Request{Handle: row.Handle, Seq: row.Seq, Bucket: bucket}, nil
	}
	q.release(req)
	return req, nil
}

// Expire purges every request whose timeout elapsed at now and returns the
// requests removed.
func (q *Queue) Expire(ctx context.Context, now time.Time) ([]models.Request, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	handles, err := q.repo.ListExpired(ctx, now.UTC())
	if err != nil {
		return nil, err
	}

	expired := make([]models.Request, 0, len(handles))
	purged := make([]int64, 0, len(handles))
	for _, h := range handles {
		req, err := q.purge(ctx, h)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return expired, err
		}
		expired = append(expired, req)
		purged = append(purged, h)
	}

	if len(purged) > 0 {
		q.logger.Info().Str("func", "Queue.Expire").Ints64("handles", purged).Msg("expired requests purged")
	}
	return expired, nil
}

// Pending returns the number of live entries in bucket.
func (q *Queue) Pending(ctx context.Context, bucket models.Bucket) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	st, err := q.repo.Bucket(ctx, bucket.String())
	if err != nil {
		return 0, err
	}
	return st.Count, nil
}

// importFile copies an install payload into the queue directory.
func (q *Queue) importFile(src string) (string, error) {
	if src == "" {
		return "", ErrMissingFile
	}
	in, err := os.Open(src)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrMissingFile, src)
	}
	if err != nil {
		return "", fmt.Errorf("open install file: %w", err)
	}
	defer in.Close()

	if fi, err := in.Stat(); err == nil && fi.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrMissingFile, src)
	}

	if err := os.MkdirAll(q.dir, 0o755); err != nil {
		return "", fmt.Errorf("create queue dir: %w", err)
	}
	dst := filepath.Join(q.dir, uuid.NewString()+"-"+filepath.Base(src))

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create queued file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("copy install file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("copy install file: %w", err)
	}
	return dst, nil
}

// release unlinks install payloads owned by the queue directory.
func (q *Queue) release(req models.Request) {
	if req.Type != models.RequestInstall || req.Params.Filename == "" || q.dir == "" {
		return
	}
	rel, err := filepath.Rel(q.dir, req.Params.Filename)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}
	if err := os.Remove(req.Params.Filename); err != nil && !errors.Is(err, os.ErrNotExist) {
		q.logger.Warn().Err(err).
			Str("func", "Queue.release").
			Str("file", req.Params.Filename).
			Msg("failed to unlink install payload")
	}
}

func decode(row store.RequestRow) (models.Request, error) {
	typ, err := models.ParseRequestType(row.Type)
	if err != nil {
		return models.Request{}, err
	}
	bucket, err := parseBucket(row.Bucket)
	if err != nil {
		return models.Request{}, err
	}

	var params models.RequestParams
	if len(row.Params) > 0 {
		if err := json.Unmarshal(row.Params, &params); err != nil {
			return models.Request{}, fmt.Errorf("decode params: %w", err)
		}
	}

	persistence := models.PersistencePersistent
	if row.ExpiresAt != nil {
		persistence = models.PersistenceImmediate
	}

	return models.Request{
		Handle:      row.Handle,
		Seq:         row.Seq,
		Type:        typ,
		Bucket:      bucket,
		Cradle:      row.Cradle,
		ClientID:    row.ClientID,
		Persistence: persistence,
		Timeout:     time.Duration(row.TimeoutMS) * time.Millisecond,
		ExpiresAt:   row.ExpiresAt,
		CreatedAt:   row.CreatedAt,
		Params:      params,
	}, nil
}

func parseBucket(s string) (models.Bucket, error) {
	if s == models.SystemBucket {
		return models.SystemBucketKey(), nil
	}
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return models.Bucket{}, fmt.Errorf("bad bucket %q: %w", s, err)
	}
	return models.PilotBucket(uint32(id)), nil
}
