package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"rp_admin_backend/internal/models"
	"rp_admin_backend/internal/repositories"
	"rp_admin_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidRole        = errors.New("role must be Admin or Staff")
)

// LoginRequest DTO
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserRequest DTO. Role defaults to Staff.
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
	Role     string `json:"role" binding:"omitempty,oneof=Admin Staff"`
}

// AuthResponse DTO
type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
}

type AuthService interface {
	Login(req LoginRequest) (*AuthResponse, error)
	RegisterUser(req RegisterUserRequest) (*models.User, error)
	GetUserProfile(userID int64) (*models.User, error)
	// EnsureAdmin creates an Admin account with the given credentials when
	// the username does not exist yet. It reports whether a user was created.
	EnsureAdmin(username, password string) (bool, error)
}

type authService struct {
	authRepo repositories.AuthRepository
	db       *sql.DB
	jwt      *utils.JWTManager
}

func NewAuthService(authRepo repositories.AuthRepository, db *sql.DB, jwt *utils.JWTManager) AuthService {
	return &authService{authRepo: authRepo, db: db, jwt: jwt}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	user, err := s.authRepo.FindUserByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	user.PasswordHash = ""
	return &AuthResponse{
		User:        user,
		AccessToken: token,
		ExpiresIn:   int64(s.jwt.TTL().Seconds()),
	}, nil
}

func (s *authService) RegisterUser(req RegisterUserRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleStaff
	}
	if role != models.RoleAdmin && role != models.RoleStaff {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	return s.createUser(strings.TrimSpace(req.Username), req.Password, req.FullName, role)
}

func (s *authService) createUser(username, password, fullName, role string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username required", ErrValidation)
	}
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:     username,
		PasswordHash: hashed,
		FullName:     utils.TrimmedOrNil(&fullName),
		Role:         role,
		IsActive:     true,
	}
	if _, err := s.authRepo.CreateUser(s.db, &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrUsernameExists, username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.PasswordHash = ""
	return &user, nil
}

func (s *authService) GetUserProfile(userID int64) (*models.User, error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user profile: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *authService) EnsureAdmin(username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, nil
	}
	_, err := s.authRepo.FindUserByUsername(username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return false, fmt.Errorf("failed to look up admin %s: %w", username, err)
	}
	if _, err := s.createUser(username, password, "", models.RoleAdmin); err != nil {
		// Another instance may have seeded it first.
		if errors.Is(err, ErrUsernameExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
