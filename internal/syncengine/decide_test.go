package syncengine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-pilot/models"
)

const (
	nothing  = models.AttrNothing
	modified = models.AttrModified
	deleted  = models.AttrDeleted
)

func rem(attr models.RecordAttr, archived bool) *models.Record {
	return &models.Record{ID: 5, Attr: attr, Archived: archived, Payload: []byte("remote")}
}

func loc(id uint32, attr models.RecordAttr, archived bool) *models.LocalRecord {
	return &models.LocalRecord{LocalID: 1, Record: models.Record{ID: id, Attr: attr, Archived: archived, Payload: []byte("local")}}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		local     *models.LocalRecord
		remote    *models.Record
		identical bool
		want      Decision
	}{
		{"new device record", nil, rem(nothing, false), false, Decision{Case: 1, Action: ActionStore}},
		{"modified device record without mapping", nil, rem(modified, false), false, Decision{Case: 7, Action: ActionPull}},
		{"deleted device record without mapping", nil, rem(deleted, false), false, Decision{}},
		{"desktop only new", loc(0, nothing, false), nil, false, Decision{Case: 2, Action: ActionPush}},
		{"desktop only modified", loc(0, modified, false), nil, false, Decision{Case: 8, Action: ActionPush}},
		{"deleted desktop record the device never had", loc(0, deleted, false), nil, false, Decision{Case: 4, Action: ActionDropLocal}},
		{"mapped record gone from device", loc(5, deleted, false), nil, false, Decision{Case: 4, Action: ActionDropLocal}},
		{"clean mapped record gone from device", loc(5, nothing, false), nil, false, Decision{}},
		{"case 3", loc(5, nothing, false), rem(deleted, false), false, Decision{Case: 3, Action: ActionMarkLocalDeleted}},
		{"case 3 both deleted", loc(5, deleted, false), rem(deleted, false), false, Decision{Case: 3, Action: ActionMarkLocalDeleted}},
		{"case 4", loc(5, deleted, false), rem(nothing, false), false, Decision{Case: 4, Action: ActionDeleteRemote}},
		{"case 5", loc(5, modified, false), rem(deleted, false), false, Decision{Case: 5, Action: ActionPush, Conflict: true}},
		{"case 6", loc(5, deleted, false), rem(modified, false), false, Decision{Case: 6, Action: ActionPull, Conflict: true}},
		{"case 7", loc(5, nothing, false), rem(modified, false), false, Decision{Case: 7, Action: ActionPull}},
		{"case 8", loc(5, modified, false), rem(nothing, false), false, Decision{Case: 8, Action: ActionPush}},
		{"case 9", loc(5, modified, false), rem(modified, false), true, Decision{Case: 9, Action: ActionClearLocal}},
		{"case 10", loc(5, modified, false), rem(modified, false), false, Decision{Case: 10, Action: ActionDuplicate, Conflict: true}},
		{"both clean", loc(5, nothing, false), rem(nothing, false), false, Decision{}},
		{"case 11 no local", nil, rem(nothing, true), false, Decision{Case: 11, Action: ActionArchiveRemote}},
		{"case 11 clean local", loc(5, nothing, false), rem(nothing, true), false, Decision{Case: 11, Action: ActionArchiveRemote}},
		{"case 12", loc(5, deleted, false), rem(nothing, true), false, Decision{Case: 12, Action: ActionArchiveRemote}},
		{"case 13", loc(5, modified, false), rem(nothing, true), false, Decision{Case: 13, Action: ActionPush, Conflict: true}},
		{"case 14", loc(5, modified, false), rem(modified, true), true, Decision{Case: 14, Action: ActionArchiveRemoteDeleteLocal}},
		{"case 15", loc(5, modified, false), rem(modified, true), false, Decision{Case: 15, Action: ActionDuplicate, Conflict: true}},
		{"case 16 no remote", loc(5, nothing, true), nil, false, Decision{Case: 16, Action: ActionArchiveLocal}},
		{"case 16 clean remote", loc(5, nothing, true), rem(nothing, false), false, Decision{Case: 16, Action: ActionArchiveLocal}},
		{"case 17", loc(5, nothing, true), rem(deleted, false), false, Decision{Case: 17, Action: ActionArchiveLocal}},
		{"case 18", loc(5, nothing, true), rem(modified, false), false, Decision{Case: 18, Action: ActionPull, Conflict: true}},
		{"case 19", loc(5, modified, true), rem(modified, false), true, Decision{Case: 19, Action: ActionArchiveLocal}},
		{"case 20", loc(5, modified, true), rem(modified, false), false, Decision{Case: 20, Action: ActionDuplicate, Conflict: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.local, tt.remote, tt.identical))
		})
	}
}

func TestDecide_EveryCombination(t *testing.T) {
	attrs := []models.RecordAttr{nothing, modified, deleted}
	seen := make(map[int]bool)

	var locals []*models.LocalRecord
	var remotes []*models.Record
	locals = append(locals, nil)
	remotes = append(remotes, nil)
	for _, a := range attrs {
		for _, archived := range []bool{false, true} {
			locals = append(locals, loc(5, a, archived), loc(0, a, archived))
			remotes = append(remotes, rem(a, archived))
		}
	}

	for _, l := range locals {
		for _, r := range remotes {
			for _, identical := range []bool{false, true} {
				name := fmt.Sprintf("%v/%v/%v", describeLocal(l), describeRemote(r), identical)
				d := Decide(l, r, identical)

				assert.GreaterOrEqual(t, d.Case, 0, name)
				assert.LessOrEqual(t, d.Case, 20, name)
				assert.Equal(t, d.Case == 0, d.Action == ActionNone, name)
				if r == nil {
					assert.NotContains(t, []Action{ActionPull, ActionStore, ActionArchiveRemote, ActionDeleteRemote}, d.Action, name)
				}
				if l == nil {
					assert.NotContains(t, []Action{ActionPush, ActionArchiveLocal, ActionDropLocal, ActionClearLocal}, d.Action, name)
				}
				if d.Action == ActionClearLocal || d.Action == ActionArchiveRemoteDeleteLocal {
					assert.True(t, identical, name)
				}
				seen[d.Case] = true
			}
		}
	}

	for c := 1; c <= 20; c++ {
		assert.True(t, seen[c], "case %d is reachable", c)
	}
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "duplicate", ActionDuplicate.String())
	assert.Equal(t, "unknown", Action(99).String())
}

func describeLocal(l *models.LocalRecord) string {
	if l == nil {
		return "none"
	}
	return fmt.Sprintf("id=%d,%s,archived=%v", l.ID, l.Attr, l.Archived)
}

func describeRemote(r *models.Record) string {
	if r == nil {
		return "none"
	}
	return fmt.Sprintf("%s,archived=%v", r.Attr, r.Archived)
}
