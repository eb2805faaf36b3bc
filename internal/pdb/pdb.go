// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package pdb reads and writes handheld database images: record databases
// (.pdb) and resource databases (.prc). Backups are stored in this format
// and install files are read from it.
package pdb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/go-pilot/models"
)

const (
	headerSize        = 78
	recordEntrySize   = 8
	resourceEntrySize = 10
	nameSize          = 32
	// gap is the two zero bytes that follow the entry table.
	gap = 2

	attrDeleted = 0x80
	attrDirty   = 0x40
	attrSecret  = 0x10
	attrArchive = 0x08
	attrCatMask = 0x0F

	// ExtRecord and ExtResource are the file extensions of the two kinds.
	ExtRecord   = ".pdb"
	ExtResource = ".prc"
)

// epochOffset is the number of seconds between 1904-01-01 and 1970-01-01.
const epochOffset = 2082844800

// File is one database image.
type File struct {
	Info      models.DBInfo
	AppBlock  []byte
	Records   []models.Record
	Resources []models.Resource
}

type header struct {
	Name         [nameSize]byte
	Attributes   uint16
	Version      uint16
	Created      uint32
	Modified     uint32
	Backup       uint32
	ModNum       uint32
	AppInfo      uint32
	SortInfo     uint32
	Type         [4]byte
	Creator      [4]byte
	UniqueIDSeed uint32
	NextList     uint32
	Count        uint16
}

// Encode writes f to w.
func Encode(w io.Writer, f *File) error {
	if len(f.Info.Name) >= nameSize {
		return fmt.Errorf("%w: %q", ErrNameTooLong, f.Info.Name)
	}

	resource := f.Info.Resource()
	count := len(f.Records)
	entrySize := recordEntrySize
	if resource {
		count = len(f.Resources)
		entrySize = resourceEntrySize
	}

	h := header{
		Attributes: f.Info.Flags,
		Version:    f.Info.Version,
		Created:    toPalmTime(f.Info.CreatedAt),
		Modified:   toPalmTime(f.Info.ModifiedAt),
		Backup:     toPalmTime(f.Info.BackupAt),
		ModNum:     f.Info.ModNum,
		Count:      uint16(count),
	}
	copy(h.Name[:], f.Info.Name)
	copy(h.Type[:], f.Info.Type)
	copy(h.Creator[:], f.Info.Creator)

	offset := uint32(headerSize + count*entrySize + gap)
	if len(f.AppBlock) > 0 {
		h.AppInfo = offset
		offset += uint32(len(f.AppBlock))
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, &h); err != nil {
		return err
	}

	var body bytes.Buffer
	body.Write(f.AppBlock)
	if resource {
		for _, res := range f.Resources {
			var typ [4]byte
			copy(typ[:], res.Type)
			buf.Write(typ[:])
			_ = binary.Write(&buf, binary.BigEndian, res.ID)
			_ = binary.Write(&buf, binary.BigEndian, offset)
			body.Write(res.Data)
			offset += uint32(len(res.Data))
		}
	} else {
		for _, rec := range f.Records {
			_ = binary.Write(&buf, binary.BigEndian, offset)
			buf.WriteByte(encodeAttr(rec))
			buf.Write([]byte{byte(rec.ID >> 16), byte(rec.ID >> 8), byte(rec.ID)})
			body.Write(rec.Payload)
			offset += uint32(len(rec.Payload))
		}
	}
	buf.Write(make([]byte, gap))

	if _, err := buf.WriteTo(w); err != nil {
		return err
	}
	_, err := body.WriteTo(w)
	return err
}

// Decode reads one database image from r.
func Decode(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < headerSize {
		return nil, ErrShortFile
	}

	var h header
	if err := binary.Read(bytes.NewReader(data[:headerSize]), binary.BigEndian, &h); err != nil {
		return nil, err
	}

	f := &File{Info: models.DBInfo{
		Name:       cString(h.Name[:]),
		Type:       cString(h.Type[:]),
		Creator:    cString(h.Creator[:]),
		Flags:      h.Attributes,
		Version:    h.Version,
		ModNum:     h.ModNum,
		CreatedAt:  fromPalmTime(h.Created),
		ModifiedAt: fromPalmTime(h.Modified),
		BackupAt:   fromPalmTime(h.Backup),
	}}

	count := int(h.Count)
	entrySize := recordEntrySize
	if f.Info.Resource() {
		entrySize = resourceEntrySize
	}
	table := data[headerSize:]
	if len(table) < count*entrySize {
		return nil, ErrShortFile
	}

	offsets := make([]uint32, count)
	for i := range count {
		e := table[i*entrySize:]
		if f.Info.Resource() {
			offsets[i] = binary.BigEndian.Uint32(e[6:10])
		} else {
			offsets[i] = binary.BigEndian.Uint32(e[0:4])
		}
	}

	end := func(i int) uint32 {
		if i+1 < count {
			return offsets[i+1]
		}
		return uint32(len(data))
	}

	if h.AppInfo != 0 {
		stop := uint32(len(data))
		if count > 0 {
			stop = offsets[0]
		}
		if h.AppInfo > stop || stop > uint32(len(data)) {
			return nil, fmt.Errorf("%w: app block at %d", ErrCorrupt, h.AppInfo)
		}
		f.AppBlock = append([]byte(nil), data[h.AppInfo:stop]...)
	}

	for i := range count {
		start, stop := offsets[i], end(i)
		if start > stop || stop > uint32(len(data)) {
			return nil, fmt.Errorf("%w: entry %d", ErrCorrupt, i)
		}
		payload := append([]byte(nil), data[start:stop]...)
		e := table[i*entrySize:]

		if f.Info.Resource() {
			f.Resources = append(f.Resources, models.Resource{
				Type:  cString(e[0:4]),
				ID:    binary.BigEndian.Uint16(e[4:6]),
				Index: i,
				Data:  payload,
			})
			continue
		}

		rec := decodeAttr(e[4])
		rec.ID = uint32(e[5])<<16 | uint32(e[6])<<8 | uint32(e[7])
		rec.Payload = payload
		f.Records = append(f.Records, rec)
	}
	return f, nil
}

// ReadFile decodes the image stored at path.
func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return f, nil
}

// WriteFile stores f at path, replacing any previous image atomically.
func WriteFile(path string, f *File) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pdb-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, f); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// FileName returns the file name a database is backed up under.
func FileName(info models.DBInfo) string {
	name := strings.ReplaceAll(info.Name, "%", "%25")
	name = strings.ReplaceAll(name, "/", "%2F")
	if info.Resource() {
		return name + ExtResource
	}
	return name + ExtRecord
}

// IsImage reports whether path carries one of the image extensions.
func IsImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtRecord, ExtResource, ".pqa":
		return true
	}
	return false
}

func encodeAttr(rec models.Record) byte {
	b := byte(rec.Category) & attrCatMask
	if rec.Secret {
		b |= attrSecret
	}
	switch {
	case rec.Archived:
		b |= attrDeleted | attrArchive
	case rec.Attr == models.AttrDeleted:
		b |= attrDeleted
	}
	if rec.Attr == models.AttrModified {
		b |= attrDirty
	}
	return b
}

func decodeAttr(b byte) models.Record {
	rec := models.Record{
		Category: int(b & attrCatMask),
		Secret:   b&attrSecret != 0,
		Attr:     models.AttrNothing,
	}
	switch {
	case b&attrDeleted != 0 && b&attrArchive != 0:
		rec.Archived = true
	case b&attrDeleted != 0:
		rec.Attr = models.AttrDeleted
	}
	if b&attrDirty != 0 && rec.Attr != models.AttrDeleted {
		rec.Attr = models.AttrModified
	}
	return rec
}

func toPalmTime(t time.Time) uint32 {
	if t.IsZero() {
		return 0
	}
	return uint32(t.Unix() + epochOffset)
}

func fromPalmTime(v uint32) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(int64(v)-epochOffset, 0).UTC()
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
