// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"strings"
)

// SyncType selects how a conduit reconciles one database.
type SyncType string

const (
	// SyncTypeSynchronize is the regular two-way synchronization.
	SyncTypeSynchronize SyncType = "synchronize"
	// SyncTypeCopyToPilot replaces the handheld database with the desktop copy.
	SyncTypeCopyToPilot SyncType = "copy_to_pilot"
	// SyncTypeCopyFromPilot replaces the desktop copy with the handheld database.
	SyncTypeCopyFromPilot SyncType = "copy_from_pilot"
	// SyncTypeMergeToPilot adds desktop records to the handheld without deleting.
	SyncTypeMergeToPilot SyncType = "merge_to_pilot"
	// SyncTypeMergeFromPilot adds handheld records to the desktop without deleting.
	SyncTypeMergeFromPilot SyncType = "merge_from_pilot"
	// SyncTypeCustom is a conduit-specific synchronize action, driven like
	// SyncTypeSynchronize.
	SyncTypeCustom SyncType = "custom"
	// SyncTypeNotSet disables the conduit.
	SyncTypeNotSet SyncType = "not_set"
)

// ErrUnknownSyncType is returned by ParseSyncType for values outside the enum.
var ErrUnknownSyncType = errors.New("unknown sync type")

var allSyncTypes = []SyncType{
	SyncTypeSynchronize,
	SyncTypeCopyToPilot,
	SyncTypeCopyFromPilot,
	SyncTypeMergeToPilot,
	SyncTypeMergeFromPilot,
	SyncTypeCustom,
	SyncTypeNotSet,
}

// AllSyncTypes returns every member of the enum in declaration order.
func AllSyncTypes() []SyncType {
	out := make([]SyncType, len(allSyncTypes))
	copy(out, allSyncTypes)
	return out
}

// ParseSyncType accepts the canonical names plus a few legacy spellings
// ("copy_to", "CopyToPilot", ...). An empty string parses as SyncTypeNotSet.
func ParseSyncType(s string) (SyncType, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	switch norm {
	case "", "not_set", "notset", "disabled":
		return SyncTypeNotSet, nil
	case "synchronize", "sync":
		return SyncTypeSynchronize, nil
	case "copy_to_pilot", "copytopilot", "copy_to":
		return SyncTypeCopyToPilot, nil
	case "copy_from_pilot", "copyfrompilot", "copy_from":
		return SyncTypeCopyFromPilot, nil
	case "merge_to_pilot", "mergetopilot", "merge_to":
		return SyncTypeMergeToPilot, nil
	case "merge_from_pilot", "mergefrompilot", "merge_from":
		return SyncTypeMergeFromPilot, nil
	case "custom":
		return SyncTypeCustom, nil
	}
	return SyncTypeNotSet, ErrUnknownSyncType
}

// Enabled reports whether the sync type runs the conduit at all.
func (t SyncType) Enabled() bool {
	return t != SyncTypeNotSet && t != ""
}

// TwoWay reports whether the sync type goes through the reconciliation state
// machine (Synchronize and Custom).
func (t SyncType) TwoWay() bool {
	return t == SyncTypeSynchronize || t == SyncTypeCustom
}

func (t SyncType) String() string {
	if t == "" {
		return string(SyncTypeNotSet)
	}
	return string(t)
}

// ConduitOperation is the operation a client asks for in RequestConduit.
type ConduitOperation string

const (
	OperationSynchronize ConduitOperation = "synchronize"
	OperationCopyFrom    ConduitOperation = "copy_from"
	OperationCopyTo      ConduitOperation = "copy_to"
	OperationMergeFrom   ConduitOperation = "merge_from"
	OperationMergeTo     ConduitOperation = "merge_to"
	OperationDefault     ConduitOperation = "default"
)

// ErrUnknownOperation is returned for an operation outside the enum.
var ErrUnknownOperation = errors.New("unknown conduit operation")

// SyncType maps the operation onto the sync-type enum. OperationDefault maps to
// SyncTypeNotSet, meaning "use whatever the conduit is configured with".
func (o ConduitOperation) SyncType() (SyncType, error) {
	switch o {
	case OperationSynchronize:
		return SyncTypeSynchronize, nil
	case OperationCopyFrom:
		return SyncTypeCopyFromPilot, nil
	case OperationCopyTo:
		return SyncTypeCopyToPilot, nil
	case OperationMergeFrom:
		return SyncTypeMergeFromPilot, nil
	case OperationMergeTo:
		return SyncTypeMergeToPilot, nil
	case OperationDefault, "":
		return SyncTypeNotSet, nil
	}
	return SyncTypeNotSet, ErrUnknownOperation
}
