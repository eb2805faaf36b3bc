package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pilot/internal/logger"
	"github.com/MKhiriev/go-pilot/models"
)

type requestRepository struct {
	*DB
	logger *logger.Logger
}

// NewRequestRepository constructs a [RequestRepository] backed by db.
func NewRequestRepository(db *DB, logger *logger.Logger) RequestRepository {
	return &requestRepository{
		DB:     db,
		logger: logger,
	}
}

func scanRequest(row rowScanner) (RequestRow, error) {
	var r RequestRow
	var expires sql.NullTime
	err := row.Scan(
		&r.Handle,
		&r.Bucket,
		&r.Seq,
		&r.Type,
		&r.Cradle,
		&r.ClientID,
		&r.TimeoutMS,
		&expires,
		&r.CreatedAt,
		&r.Params,
	)
	if expires.Valid {
		t := expires.Time
		r.ExpiresAt = &t
	}
	return r, err
}

// Insert allocates a sequence number and stores row in one transaction.
func (r *requestRepository) Insert(ctx context.Context, row RequestRow, handleBase int64) (RequestRow, error) {
	log := logger.FromContext(ctx)

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, ensureRequestBucket, row.Bucket); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if err := tx.QueryRowContext(ctx, allocateRequestSeq, row.Bucket).Scan(&row.Seq); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if row.Seq >= models.HandleBase {
			return fmt.Errorf("%w: bucket %s", ErrRequestBucketFull, row.Bucket)
		}
		row.Handle = handleBase + row.Seq

		if row.Params == nil {
			row.Params = []byte("{}")
		}
		_, err := tx.ExecContext(ctx, insertRequest,
			row.Handle,
			row.Bucket,
			row.Seq,
			row.Type,
			row.Cradle,
			row.ClientID,
			row.TimeoutMS,
			row.ExpiresAt,
			row.CreatedAt,
			string(row.Params),
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "requestRepository.Insert").
			Str("bucket", row.Bucket).
			Str("type", row.Type).
			Msg("failed to store request")
		return RequestRow{}, err
	}

	return row, nil
}

func (r *requestRepository) Get(ctx context.Context, handle int64) (RequestRow, error) {
	row, err := scanRequest(r.DB.QueryRowContext(ctx, getRequest, handle))
	if errors.Is(err, sql.ErrNoRows) {
		return RequestRow{}, ErrRequestNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "requestRepository.Get").Int64("handle", handle).Msg("failed to get request")
		return RequestRow{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return row, nil
}

func buildListRequestsQuery(filter RequestFilter) (string, []any, error) {
	q := sq.Select(
		"handle", "bucket", "seq", "type", "cradle", "client_id",
		"timeout_ms", "expires_at", "created_at", "params",
	).
		From("requests").
		PlaceholderFormat(sq.Dollar).
		OrderBy("bucket", "seq")

	if filter.Bucket != "" {
		q = q.Where(sq.Eq{"bucket": filter.Bucket})
	}
	if len(filter.Types) > 0 {
		q = q.Where(sq.Eq{"type": filter.Types})
	}

	return q.ToSql()
}

func (r *requestRepository) List(ctx context.Context, filter RequestFilter) ([]RequestRow, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRequestsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "requestRepository.List").Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "requestRepository.List").
			Str("bucket", filter.Bucket).
			Msg("failed to execute query for requests")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make([]RequestRow, 0, 8)
	for rows.Next() {
		row, scanErr := scanRequest(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "requestRepository.List").Msg("failed to scan request row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

// Delete removes the request and decrements the bucket count. The removed
// row is returned so the caller can release resources it owned.
func (r *requestRepository) Delete(ctx context.Context, handle int64) (RequestRow, error) {
	var removed RequestRow

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		row, err := scanRequest(tx.QueryRowContext(ctx, getRequest, handle))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRequestNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		if _, err := tx.ExecContext(ctx, deleteRequest, handle); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if _, err := tx.ExecContext(ctx, decrementRequestBucket, row.Bucket); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		removed = row
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrRequestNotFound) {
			logger.FromContext(ctx).Err(err).
				Str("func", "requestRepository.Delete").
				Int64("handle", handle).
				Msg("failed to purge request")
		}
		return RequestRow{}, err
	}

	return removed, nil
}

func (r *requestRepository) ListExpired(ctx context.Context, now time.Time) ([]int64, error) {
	rows, err := r.DB.QueryContext(ctx, listExpiredRequests, now)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "requestRepository.ListExpired").Msg("failed to query expired requests")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var handles []int64
	for rows.Next() {
		var h int64
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		handles = append(handles, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return handles, nil
}

// Bucket returns the counters of bucket; an unknown bucket reports zero
// entries and NextSeq 1.
func (r *requestRepository) Bucket(ctx context.Context, bucket string) (BucketState, error) {
	var st BucketState
	err := r.DB.QueryRowContext(ctx, getRequestBucket, bucket).Scan(&st.Bucket, &st.Count, &st.NextSeq)
	if errors.Is(err, sql.ErrNoRows) {
		return BucketState{Bucket: bucket, NextSeq: 1}, nil
	}
	if err != nil {
		return BucketState{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return st, nil
}
