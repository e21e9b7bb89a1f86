package validators

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-vault-sync/models"
)

// validateMigrationHistory checks that every migration identifier carries an
// extractable version and that the last entry agrees with the snapshot's
// declared version. An empty history is accepted: the declared version alone
// then governs compatibility.
func validateMigrationHistory(version string, migrations []string) error {
	var last models.VaultVersion
	for _, migration := range migrations {
		extracted, err := models.ExtractVaultVersion(migration)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrMalformedMigration, migration)
		}
		last = extracted
	}

	if len(migrations) == 0 {
		return nil
	}
	if version != last.String() {
		return fmt.Errorf("%w: version %q, last migration %q", ErrVersionMigrationsDisagree, version, last.String())
	}

	return nil
}

// validatePayloadShape decodes raw payload bytes as the typed payload of the
// given table and checks its required fields. Unknown JSON fields are
// deliberately tolerated: a newer client of the same major version may have
// written additive fields this build does not know yet.
func validatePayloadShape(table models.TableName, payload json.RawMessage) error {
	switch table {
	case models.TableItems:
		var p models.ItemPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return validateItemPayload(p)
	case models.TableFields:
		var p models.FieldPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return validateFieldPayload(p)
	case models.TablePasskeys:
		var p models.PasskeyPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return validatePasskeyPayload(p)
	case models.TableAttachments:
		var p models.AttachmentPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return validateAttachmentPayload(p)
	case models.TableSettings:
		var p models.SettingPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return validateSettingPayload(p)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
}

func validateItemPayload(p models.ItemPayload) error {
	if p.Name == "" {
		return ErrMissingItemName
	}
	return nil
}

func validateFieldPayload(p models.FieldPayload) error {
	if p.ItemID == "" {
		return ErrMissingOwningItem
	}
	if p.Label == "" {
		return ErrMissingFieldLabel
	}
	if !models.KnownFieldKind(p.Kind) {
		return fmt.Errorf("%w: %q", ErrUnknownFieldKind, p.Kind)
	}
	return nil
}

func validatePasskeyPayload(p models.PasskeyPayload) error {
	if p.ItemID == "" {
		return ErrMissingOwningItem
	}
	if p.RPID == "" {
		return ErrMissingRelyingParty
	}
	if p.CredentialID == "" {
		return ErrMissingCredentialID
	}
	return nil
}

func validateAttachmentPayload(p models.AttachmentPayload) error {
	if p.ItemID == "" {
		return ErrMissingOwningItem
	}
	if p.FileName == "" {
		return ErrMissingFileName
	}
	if p.SizeBytes < 0 {
		return ErrNegativeSize
	}
	return nil
}

func validateSettingPayload(p models.SettingPayload) error {
	if p.Key == "" {
		return ErrMissingSettingKey
	}
	return nil
}
