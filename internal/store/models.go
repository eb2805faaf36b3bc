package store

import "time"

// RequestRow is one persisted request queue entry. Params holds the JSON
// encoded type-specific parameters.
type RequestRow struct {
	Handle    int64
	Bucket    string
	Seq       int64
	Type      string
	Cradle    string
	ClientID  string
	TimeoutMS int64
	ExpiresAt *time.Time
	CreatedAt time.Time
	Params    []byte
}

// RequestFilter selects rows for RequestRepository.List. An empty Bucket
// matches every bucket; empty Types matches every type.
type RequestFilter struct {
	Bucket string
	Types  []string
}

// BucketState is the counter pair of one queue bucket. Count tracks live
// entries; NextSeq is monotonic so handles are never reused.
type BucketState struct {
	Bucket  string
	Count   int64
	NextSeq int64
}
