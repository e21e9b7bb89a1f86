package models

import "encoding/json"

// Record is a single row of a vault table.
// It is the unit of conflict resolution: reconciliation compares records
// by (ID, UpdatedAt, IsDeleted) and treats the payload as an opaque value
// that wins or loses in full.
type Record struct {
	// ID is the stable primary key of the record.
	// Assigned once at creation (UUID) and never changed afterwards.
	ID string `json:"id"`

	// UpdatedAt is the wall-clock time of the last committed write,
	// in Unix milliseconds. Every local edit, including a soft delete,
	// must advance it.
	UpdatedAt int64 `json:"updated_at"`

	// IsDeleted marks the record as a tombstone.
	// Tombstones are retained, compared, and merged like live rows;
	// the engine never physically removes a record.
	IsDeleted bool `json:"is_deleted"`

	// Payload holds the entity-specific fields in their wire form.
	// It is carried byte-for-byte so that a newer record replaces an
	// older one entirely, including payload fields this build does
	// not know about.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Tombstone returns a copy of the record marked deleted at the given time.
// The payload is kept so an undelete restores the last known content.
func (r Record) Tombstone(updatedAtMs int64) Record {
	r.IsDeleted = true
	r.UpdatedAt = updatedAtMs
	return r
}
