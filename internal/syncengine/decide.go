package syncengine

import "github.com/MKhiriev/go-pilot/models"

// Action is what reconciliation does with one record pair.
type Action int

const (
	ActionNone Action = iota
	// ActionStore stores a device record the desktop has never seen.
	ActionStore
	// ActionPull overwrites the desktop copy with the device record.
	ActionPull
	// ActionPush writes the desktop copy to the device.
	ActionPush
	// ActionMarkLocalDeleted flags the desktop copy deleted.
	ActionMarkLocalDeleted
	// ActionDeleteRemote deletes the device record and flags the desktop
	// copy deleted.
	ActionDeleteRemote
	// ActionDropLocal removes a deleted desktop record the device never had.
	ActionDropLocal
	// ActionClearLocal clears the desktop dirty flag.
	ActionClearLocal
	// ActionDuplicate keeps both versions: the desktop copy becomes a new
	// device record and the device record a new desktop record.
	ActionDuplicate
	// ActionArchiveRemote hands the device record to the desktop archive.
	ActionArchiveRemote
	// ActionArchiveRemoteDeleteLocal archives the device record and drops the
	// desktop copy.
	ActionArchiveRemoteDeleteLocal
	// ActionArchiveLocal archives the desktop copy and deletes the device
	// record.
	ActionArchiveLocal
)

var actionNames = [...]string{
	ActionNone:                     "none",
	ActionStore:                    "store",
	ActionPull:                     "pull",
	ActionPush:                     "push",
	ActionMarkLocalDeleted:         "mark_local_deleted",
	ActionDeleteRemote:             "delete_remote",
	ActionDropLocal:                "drop_local",
	ActionClearLocal:               "clear_local",
	ActionDuplicate:                "duplicate",
	ActionArchiveRemote:            "archive_remote",
	ActionArchiveRemoteDeleteLocal: "archive_remote_delete_local",
	ActionArchiveLocal:             "archive_local",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Decision is the outcome of Decide. Case numbers the row of the
// reconciliation table; zero means no row applies. Conflict is set for the
// rows where one side overrules the other and the user is told so.
type Decision struct {
	Case     int
	Action   Action
	Conflict bool
}

// Decide selects the reconciliation of one record pair. local or remote may
// be nil for a side that does not exist. identical reports whether both
// sides carry the same content and is only consulted when both are
// modified.
func Decide(local *models.LocalRecord, remote *models.Record, identical bool) Decision {
	var l *models.Record
	if local != nil {
		l = &local.Record
	}

	switch {
	case l == nil && remote == nil:
		return Decision{}

	case remote != nil && remote.Archived:
		switch {
		case l == nil || l.Attr == models.AttrNothing:
			return Decision{Case: 11, Action: ActionArchiveRemote}
		case l.Deleted():
			return Decision{Case: 12, Action: ActionArchiveRemote}
		case !remote.Modified():
			return Decision{Case: 13, Action: ActionPush, Conflict: true}
		case identical:
			return Decision{Case: 14, Action: ActionArchiveRemoteDeleteLocal}
		default:
			return Decision{Case: 15, Action: ActionDuplicate, Conflict: true}
		}

	case l != nil && l.Archived:
		switch {
		case remote == nil || remote.Attr == models.AttrNothing:
			return Decision{Case: 16, Action: ActionArchiveLocal}
		case remote.Deleted():
			return Decision{Case: 17, Action: ActionArchiveLocal}
		case !l.Modified():
			return Decision{Case: 18, Action: ActionPull, Conflict: true}
		case identical:
			return Decision{Case: 19, Action: ActionArchiveLocal}
		default:
			return Decision{Case: 20, Action: ActionDuplicate, Conflict: true}
		}

	case l == nil:
		switch remote.Attr {
		case models.AttrModified:
			return Decision{Case: 7, Action: ActionPull}
		case models.AttrDeleted:
			return Decision{}
		default:
			return Decision{Case: 1, Action: ActionStore}
		}

	case remote == nil:
		switch {
		case l.Deleted():
			return Decision{Case: 4, Action: ActionDropLocal}
		case l.Modified():
			return Decision{Case: 8, Action: ActionPush}
		case local.DesktopOnly():
			return Decision{Case: 2, Action: ActionPush}
		default:
			return Decision{}
		}
	}

	switch {
	case remote.Deleted() && l.Deleted():
		return Decision{Case: 3, Action: ActionMarkLocalDeleted}
	case remote.Deleted() && l.Modified():
		return Decision{Case: 5, Action: ActionPush, Conflict: true}
	case remote.Deleted():
		return Decision{Case: 3, Action: ActionMarkLocalDeleted}
	case l.Deleted() && remote.Modified():
		return Decision{Case: 6, Action: ActionPull, Conflict: true}
	case l.Deleted():
		return Decision{Case: 4, Action: ActionDeleteRemote}
	case remote.Modified() && l.Modified() && identical:
		return Decision{Case: 9, Action: ActionClearLocal}
	case remote.Modified() && l.Modified():
		return Decision{Case: 10, Action: ActionDuplicate, Conflict: true}
	case remote.Modified():
		return Decision{Case: 7, Action: ActionPull}
	case l.Modified():
		return Decision{Case: 8, Action: ActionPush}
	}
	return Decision{}
}
