package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/itxparadoxarc-wq/educoreportal/app/models"
)

// ErrAlreadyInitialized is returned when the bootstrap path is invoked after
// a master admin already exists.
var ErrAlreadyInitialized = errors.New("system already initialized")

// ErrDuplicateEmail is returned when registration reuses an existing email.
var ErrDuplicateEmail = errors.New("email already registered")

func GetUserByEmail(db *sqlx.DB, email string) (*models.User, error) {
	user := &models.User{}
	err := db.Get(user, `SELECT id, email, password, full_name, is_active, email_verified, created_at, updated_at
		FROM users WHERE email = $1 AND is_active = true`, email)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sqlx.DB, userID string) (*models.User, error) {
	user := &models.User{}
	err := db.Get(user, `SELECT id, email, password, full_name, is_active, email_verified, created_at, updated_at
		FROM users WHERE id = $1 AND is_active = true`, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a user plus its profile row. No role is assigned here:
// self-registered accounts stay pending until a master admin acts.
func CreateUser(db *sqlx.DB, email, passwordHash, fullName string) (*models.User, error) {
	tx, err := db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email); err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	user := &models.User{}
	err = tx.Get(user, `INSERT INTO users (email, password, full_name)
		VALUES ($1, $2, $3)
		RETURNING id, email, password, full_name, is_active, email_verified, created_at, updated_at`,
		email, passwordHash, fullName)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(`INSERT INTO profiles (user_id, full_name, email) VALUES ($1, $2, $3)`,
		user.ID, fullName, email); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}

func MarkEmailVerified(db *sqlx.DB, userID string) error {
	_, err := db.Exec(`UPDATE users SET email_verified = true, updated_at = now() WHERE id = $1`, userID)
	return err
}

// GetUserRole returns the single role assigned to a user. sql.ErrNoRows
// means the user is pending.
func GetUserRole(ctx context.Context, db *sqlx.DB, userID string) (models.Role, error) {
	var role models.Role
	err := db.GetContext(ctx, &role, `SELECT role FROM user_roles WHERE user_id = $1`, userID)
	if err != nil {
		return "", err
	}
	return role, nil
}

// RoleStore adapts the user_roles table to the session registry's role
// resolver.
type RoleStore struct {
	DB *sqlx.DB
}

func (s RoleStore) GetRole(ctx context.Context, userID string) (models.Role, error) {
	return GetUserRole(ctx, s.DB, userID)
}

// SetUserRole assigns or replaces the user's role. Privileged: handlers must
// gate this behind master_admin.
func SetUserRole(db *sqlx.DB, userID string, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}
	_, err := db.Exec(`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role`, userID, role)
	return err
}

// RemoveUserRole revokes access without deleting the identity.
func RemoveUserRole(db *sqlx.DB, userID string) error {
	_, err := db.Exec(`DELETE FROM user_roles WHERE user_id = $1`, userID)
	return err
}

// IsSystemInitialized reports whether any master admin has ever been
// assigned. Callable without authentication.
func IsSystemInitialized(db *sqlx.DB) (bool, error) {
	var count int
	err := db.Get(&count, `SELECT COUNT(*) FROM user_roles WHERE role = $1`, models.RoleMasterAdmin)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// BootstrapMasterAdmin creates the first master admin in one transaction.
// The user_roles lock plus re-check makes the path one-shot at the database,
// not in UI state.
func BootstrapMasterAdmin(db *sqlx.DB, email, passwordHash, fullName string) (*models.User, error) {
	tx, err := db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`LOCK TABLE user_roles IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return nil, err
	}

	var count int
	if err := tx.Get(&count, `SELECT COUNT(*) FROM user_roles WHERE role = $1`, models.RoleMasterAdmin); err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyInitialized
	}

	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email); err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	user := &models.User{}
	err = tx.Get(user, `INSERT INTO users (email, password, full_name, email_verified)
		VALUES ($1, $2, $3, true)
		RETURNING id, email, password, full_name, is_active, email_verified, created_at, updated_at`,
		email, passwordHash, fullName)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(`INSERT INTO profiles (user_id, full_name, email) VALUES ($1, $2, $3)`,
		user.ID, fullName, email); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`,
		user.ID, models.RoleMasterAdmin); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateStaffUser is the privileged path used by staff management: it
// creates the account, profile and role in one transaction.
func CreateStaffUser(db *sqlx.DB, email, passwordHash, fullName string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	tx, err := db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email); err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	user := &models.User{}
	err = tx.Get(user, `INSERT INTO users (email, password, full_name, email_verified)
		VALUES ($1, $2, $3, true)
		RETURNING id, email, password, full_name, is_active, email_verified, created_at, updated_at`,
		email, passwordHash, fullName)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(`INSERT INTO profiles (user_id, full_name, email) VALUES ($1, $2, $3)`,
		user.ID, fullName, email); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, user.ID, role); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}

// ListStaff returns every profile merged with its role assignment, pending
// accounts included.
func ListStaff(db *sqlx.DB) ([]models.StaffMember, error) {
	staff := []models.StaffMember{}
	err := db.Select(&staff, `
		SELECT p.user_id, p.full_name, p.email, ur.role
		FROM profiles p
		LEFT JOIN user_roles ur ON ur.user_id = p.user_id
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	return staff, nil
}

// IsNoRows reports whether err is the sql "no rows" sentinel, wrapped or not.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
