// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "bytes"

// RecordAttr is the dirty state of a record on either side.
type RecordAttr string

const (
	AttrNothing  RecordAttr = "nothing"
	AttrModified RecordAttr = "modified"
	AttrDeleted  RecordAttr = "deleted"
)

// Record is one record as the handheld sees it. ID is the handheld unique id
// and is zero for a record that was never written to the device.
type Record struct {
	ID       uint32     `json:"id"`
	Category int        `json:"category"`
	Payload  []byte     `json:"payload"`
	Attr     RecordAttr `json:"attr"`
	Secret   bool       `json:"secret"`
	Archived bool       `json:"archived"`
}

// Modified reports whether the record carries the modified flag.
func (r *Record) Modified() bool { return r != nil && r.Attr == AttrModified }

// Deleted reports whether the record carries the deleted flag.
func (r *Record) Deleted() bool { return r != nil && r.Attr == AttrDeleted }

// SameContent compares the fields that survive a round trip through the
// handheld: payload, category and the secret bit.
func (r *Record) SameContent(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Category == other.Category &&
		r.Secret == other.Secret &&
		bytes.Equal(r.Payload, other.Payload)
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	c.Payload = append([]byte(nil), r.Payload...)
	return &c
}

// LocalRecord is the desktop copy of a record. Record.ID holds the mapped
// handheld id, so ID == 0 marks a desktop-only record.
type LocalRecord struct {
	LocalID int64 `json:"local_id"`
	Record
}

// DesktopOnly reports whether the record has no handheld counterpart yet.
func (l *LocalRecord) DesktopOnly() bool { return l != nil && l.ID == 0 }
