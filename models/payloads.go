package models

// Typed payload shapes for each vault table.
//
// These structs define the fields a record payload is validated against
// when a snapshot is ingested. They are deliberately NOT used inside the
// merge algorithm: merge carries payloads as raw bytes so that additive
// fields written by a newer client of the same major version survive a
// round trip through an older client untouched.

// FieldKind defines the semantic type of a custom item field.
// The value determines how the decrypted content must be interpreted.
type FieldKind string

const (
	// FieldText is a plain visible field (e.g. an account number).
	FieldText FieldKind = "text"

	// FieldHidden is a masked field holding secret content.
	FieldHidden FieldKind = "hidden"

	// FieldOTP is a time-based one-time password seed.
	FieldOTP FieldKind = "otp"
)

// KnownFieldKind reports whether k is one of the declared field kinds.
func KnownFieldKind(k FieldKind) bool {
	switch k {
	case FieldText, FieldHidden, FieldOTP:
		return true
	}
	return false
}

// ItemPayload is the payload shape of the items table: one credential
// entry with its secret material ciphered field-by-field.
type ItemPayload struct {
	// Name is the human-readable display name of the item.
	Name string `json:"name"`

	// Username is the login identifier used for authentication.
	Username string `json:"username,omitempty"`

	// Secret is the ciphered password or secret value.
	Secret CipheredString `json:"secret,omitempty"`

	// URL is the resource the credentials apply to.
	URL string `json:"url,omitempty"`

	// Notes contains optional ciphered free-form annotations.
	Notes CipheredString `json:"notes,omitempty"`

	// FolderID is an optional logical container used to group items.
	FolderID string `json:"folder_id,omitempty"`
}

// FieldPayload is the payload shape of the fields table: a user-defined
// field attached to an item.
type FieldPayload struct {
	// ItemID references the owning items row.
	ItemID string `json:"item_id"`

	// Label is the display name of the field.
	Label string `json:"label"`

	// Kind defines how the value must be interpreted and rendered.
	Kind FieldKind `json:"kind"`

	// Value is the ciphered field content.
	Value CipheredString `json:"value"`
}

// PasskeyPayload is the payload shape of the passkeys table: a WebAuthn
// credential bound to an item.
type PasskeyPayload struct {
	// ItemID references the owning items row.
	ItemID string `json:"item_id"`

	// RPID is the relying-party identifier the passkey was minted for.
	RPID string `json:"rp_id"`

	// CredentialID is the authenticator-assigned credential handle.
	CredentialID string `json:"credential_id"`

	// PrivateKey is the ciphered signing key material.
	PrivateKey CipheredString `json:"private_key"`

	// SignCount is the authenticator signature counter.
	SignCount uint32 `json:"sign_count"`
}

// AttachmentPayload is the payload shape of the attachments table:
// metadata for an encrypted file stored outside the snapshot.
type AttachmentPayload struct {
	// ItemID references the owning items row.
	ItemID string `json:"item_id"`

	// FileName is the original name of the attached file.
	FileName string `json:"file_name"`

	// MimeType is the declared media type of the content.
	MimeType string `json:"mime_type,omitempty"`

	// SizeBytes is the plaintext size of the file in bytes.
	SizeBytes int64 `json:"size_bytes"`

	// BlobHash is the integrity hash of the encrypted blob.
	BlobHash string `json:"blob_hash"`
}

// SettingPayload is the payload shape of the settings table: one
// per-vault configuration entry.
type SettingPayload struct {
	// Key is the setting identifier, unique within the vault.
	Key string `json:"key"`

	// Value is the setting content in string form.
	Value string `json:"value"`
}
