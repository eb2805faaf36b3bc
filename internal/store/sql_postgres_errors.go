package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells [DB.inTx] whether a failed transaction is
// worth running again.
type ErrorClassification int

const (
	// NonRetryable is the classification of every unrecognised error.
	NonRetryable ErrorClassification = iota
	// Retryable marks lost connections, serialization failures and
	// deadlocks, plus a busy or locked sqlite file.
	Retryable
)

func (c ErrorClassification) String() string {
	if c == Retryable {
		return "retryable"
	}
	return "non-retryable"
}

// retryablePgCodes are the SQLSTATEs after which the sync stores repeat a
// transaction. Queue inserts and cache rewrites race the daemon's worker
// pool, so serialization failures are expected under load.
var retryablePgCodes = map[string]struct{}{
	pgerrcode.ConnectionException:    {},
	pgerrcode.ConnectionDoesNotExist: {},
	pgerrcode.ConnectionFailure:      {},
	pgerrcode.TransactionRollback:    {},
	pgerrcode.SerializationFailure:   {},
	pgerrcode.DeadlockDetected:       {},
	pgerrcode.CannotConnectNow:       {},
}

// PostgresErrorClassifier implements [ErrorClassificator] from the SQLSTATE
// of a pgx error.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return NonRetryable
	}
	return ClassifyPgCode(pgErr.Code)
}

// ClassifyPgCode classifies a raw SQLSTATE. Constraint violations such as a
// taken pilot name are never retried.
func ClassifyPgCode(code string) ErrorClassification {
	if _, ok := retryablePgCodes[code]; ok {
		return Retryable
	}
	return NonRetryable
}
