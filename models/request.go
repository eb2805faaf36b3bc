// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"strconv"
	"time"
)

// RequestType is the kind of a queued request.
type RequestType string

const (
	RequestInstall     RequestType = "install"
	RequestRestore     RequestType = "restore"
	RequestConduit     RequestType = "conduit"
	RequestGetUserInfo RequestType = "get_user_info"
	RequestSetUserInfo RequestType = "set_user_info"
	RequestGetSysInfo  RequestType = "get_sys_info"
)

// ErrUnknownRequestType is returned for a type outside the enum.
var ErrUnknownRequestType = errors.New("unknown request type")

// ParseRequestType validates a persisted request type.
func ParseRequestType(s string) (RequestType, error) {
	switch t := RequestType(s); t {
	case RequestInstall, RequestRestore, RequestConduit,
		RequestGetUserInfo, RequestSetUserInfo, RequestGetSysInfo:
		return t, nil
	}
	return "", ErrUnknownRequestType
}

// CradleScoped reports whether requests of this type belong to a cradle
// (the "system" bucket) rather than to a handheld.
func (t RequestType) CradleScoped() bool {
	return t == RequestGetUserInfo || t == RequestSetUserInfo || t == RequestGetSysInfo
}

// Persistence controls whether a request survives its timeout.
type Persistence string

const (
	// PersistenceImmediate requests expire after their timeout.
	PersistenceImmediate Persistence = "immediate"
	// PersistencePersistent requests wait for the handheld indefinitely.
	PersistencePersistent Persistence = "persistent"
)

// ErrUnknownPersistence is returned for a persistence outside the enum.
var ErrUnknownPersistence = errors.New("unknown persistence")

// ParsePersistence parses a client-supplied persistence. Empty means
// persistent.
func ParsePersistence(s string) (Persistence, error) {
	switch p := Persistence(s); p {
	case PersistenceImmediate, PersistencePersistent:
		return p, nil
	case "":
		return PersistencePersistent, nil
	}
	return "", ErrUnknownPersistence
}

// SystemBucket is the bucket name of cradle-scoped requests.
const SystemBucket = "system"

// HandleBase is the multiplier separating pilot buckets in the handle space.
const HandleBase int64 = 65535

// Bucket names the queue partition a request lives in.
type Bucket struct {
	PilotID uint32 `json:"pilot_id,omitempty"`
	System  bool   `json:"system,omitempty"`
}

// PilotBucket returns the bucket of one handheld.
func PilotBucket(id uint32) Bucket { return Bucket{PilotID: id} }

// SystemBucketKey returns the cradle-scoped bucket.
func SystemBucketKey() Bucket { return Bucket{System: true} }

func (b Bucket) String() string {
	if b.System {
		return SystemBucket
	}
	return strconv.FormatUint(uint64(b.PilotID), 10)
}

// Handle returns the handle for the given sequence number in this bucket.
func (b Bucket) Handle(seq int64) int64 {
	if b.System {
		return seq
	}
	return int64(b.PilotID)*HandleBase + seq
}

// Request is one queued operation. Exactly one of the parameter groups is
// populated, matching Type.
type Request struct {
	Handle      int64         `json:"handle"`
	Seq         int64         `json:"seq"`
	Type        RequestType   `json:"type"`
	Bucket      Bucket        `json:"bucket"`
	Cradle      string        `json:"cradle,omitempty"`
	ClientID    string        `json:"client_id"`
	Persistence Persistence   `json:"persistence"`
	Timeout     time.Duration `json:"timeout"`
	ExpiresAt   *time.Time    `json:"expires_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`

	Params RequestParams `json:"params"`
}

// RequestParams carries the type-specific parameters of a request.
type RequestParams struct {
	// install
	Filename    string `json:"filename,omitempty"`
	Description string `json:"description,omitempty"`

	// restore
	Directory string `json:"directory,omitempty"`

	// conduit
	Conduit  string   `json:"conduit,omitempty"`
	SyncType SyncType `json:"sync_type,omitempty"`

	// set_user_info
	UserInfo *UserInfo `json:"user_info,omitempty"`

	// cradle-scoped requests: false ends the session after draining
	ContinueSync bool `json:"continue_sync,omitempty"`
}

// Expired reports whether the request timed out at now.
func (r Request) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && !now.Before(*r.ExpiresAt)
}
