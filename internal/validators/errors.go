package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrUnknownTable              = errors.New("unknown vault table")
	ErrMissingVersion            = errors.New("vault version is required")
	ErrMalformedVersion          = errors.New("vault version is not a valid semantic version")
	ErrMalformedMigration        = errors.New("migration identifier carries no version")
	ErrVersionMigrationsDisagree = errors.New("vault version does not match the last applied migration")

	ErrEmptyRecordID     = errors.New("record ID is required")
	ErrDuplicateRecordID = errors.New("duplicate record ID")
	ErrNoUpdateTimestamp = errors.New("record update timestamp is required")
	ErrEmptyPayload      = errors.New("record payload is required")
	ErrMalformedPayload  = errors.New("record payload is not valid JSON for its table")

	ErrMissingItemName     = errors.New("item name is required")
	ErrMissingOwningItem   = errors.New("owning item ID is required")
	ErrMissingFieldLabel   = errors.New("field label is required")
	ErrUnknownFieldKind    = errors.New("unknown field kind")
	ErrMissingRelyingParty = errors.New("passkey relying party ID is required")
	ErrMissingCredentialID = errors.New("passkey credential ID is required")
	ErrMissingFileName     = errors.New("attachment file name is required")
	ErrNegativeSize        = errors.New("attachment size cannot be negative")
	ErrMissingSettingKey   = errors.New("setting key is required")

	ErrEmptyBlob             = errors.New("vault blob cannot be empty")
	ErrMissingHasPendingSync = errors.New("has_pending_sync flag is required")
)
