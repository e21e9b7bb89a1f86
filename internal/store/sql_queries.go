package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-vault-sync/models"
	"github.com/google/uuid"
)

// psql builds every server-side query with PostgreSQL dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	usersTable  = "users"
	vaultsTable = "vaults"
)

var (
	userColumns  = []string{"user_id", "login", "password_hash", "key_salt", "wrapped_key", "created_at"}
	vaultColumns = []string{"user_id", "blob", "revision", "has_pending_sync", "updated_at"}
)

// buildCreateUserQuery inserts a new account. The RETURNING clause hands back
// the canonical row including the database-assigned created_at.
func buildCreateUserQuery(user models.User) (string, []any, error) {
	return psql.Insert(usersTable).
		Columns("user_id", "login", "password_hash", "key_salt", "wrapped_key").
		Values(user.ID, user.Login, user.PasswordHash, user.KeySalt, user.WrappedKey).
		Suffix("RETURNING user_id, login, password_hash, key_salt, wrapped_key, created_at").
		ToSql()
}

// buildFindUserByLoginQuery looks an account up by its unique login.
func buildFindUserByLoginQuery(login string) (string, []any, error) {
	return psql.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"login": login}).
		ToSql()
}

// buildGetVaultQuery loads a user's single vault row.
func buildGetVaultQuery(userID uuid.UUID) (string, []any, error) {
	return psql.Select(vaultColumns...).
		From(vaultsTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// buildInsertVaultQuery stores the very first blob of a user at revision 1.
// ON CONFLICT DO NOTHING makes a lost first-upload race observable: the
// statement then returns no row instead of failing.
func buildInsertVaultQuery(blob models.VaultBlob) (string, []any, error) {
	return psql.Insert(vaultsTable).
		Columns("user_id", "blob", "revision", "has_pending_sync").
		Values(blob.UserID, blob.Blob, 1, blob.HasPendingSync).
		Suffix("ON CONFLICT (user_id) DO NOTHING RETURNING user_id, blob, revision, has_pending_sync, updated_at").
		ToSql()
}

// buildUpdateVaultQuery is the compare-and-swap write: the row is replaced
// and its revision incremented only when the stored revision still equals
// prevRevision. No matching row means another device committed first.
func buildUpdateVaultQuery(blob models.VaultBlob, prevRevision uint64) (string, []any, error) {
	return psql.Update(vaultsTable).
		Set("blob", blob.Blob).
		Set("revision", sq.Expr("revision + 1")).
		Set("has_pending_sync", blob.HasPendingSync).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"user_id": blob.UserID, "revision": prevRevision}).
		Suffix("RETURNING user_id, blob, revision, has_pending_sync, updated_at").
		ToSql()
}
