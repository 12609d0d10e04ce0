package repositories

import (
	"database/sql"
	"fmt"

	"rp_admin_backend/internal/models"
)

// AuthRepository defines the interface for dashboard account storage.
type AuthRepository interface {
	CreateUser(executor SQLExecutor, user *models.User) (int64, error)
	// FindUserByUsername returns the user with PasswordHash populated.
	FindUserByUsername(username string) (*models.User, error)
	FindUserByID(userID int64) (*models.User, error)
}

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

const userColumns = `id, username, password_hash, full_name, role, is_active, created_at, updated_at`

// CreateUser inserts a new account. user.PasswordHash must already be hashed.
func (r *authRepository) CreateUser(executor SQLExecutor, user *models.User) (int64, error) {
	query := `INSERT INTO admin_users (username, password_hash, full_name, role, is_active)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`
	err := executor.QueryRow(query, user.Username, user.PasswordHash, user.FullName, user.Role, user.IsActive).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return 0, wrapWriteError(err, "creating user")
	}
	return user.ID, nil
}

func (r *authRepository) FindUserByUsername(username string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM admin_users WHERE username = $1`, username))
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by username %s: %v", ErrDatabaseError, username, err)
	}
	return user, nil
}

func (r *authRepository) FindUserByID(userID int64) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM admin_users WHERE id = $1`, userID))
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by ID %d: %v", ErrDatabaseError, userID, err)
	}
	// Profile reads never carry the hash.
	user.PasswordHash = ""
	return user, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var fullName sql.NullString
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &fullName, &user.Role,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, err
	}
	user.FullName = nullableString(fullName)
	return user, nil
}
