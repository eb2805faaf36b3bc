package pdb

import "errors"

var (
	// ErrShortFile is returned when the input ends inside the header or the
	// entry table.
	ErrShortFile = errors.New("pdb: short file")
	// ErrCorrupt is returned for offsets that point outside the file or go
	// backwards.
	ErrCorrupt = errors.New("pdb: corrupt entry table")
	// ErrNameTooLong is returned when a database name does not fit the
	// 32 byte header field.
	ErrNameTooLong = errors.New("pdb: database name too long")
)
