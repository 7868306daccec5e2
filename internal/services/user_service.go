package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aurastyle/wardrobe-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	RegisterUser(username, password string) (models.User, error)
	AuthenticateUser(username, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
}

// UserService provides business logic for user accounts.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// RegisterUser creates a new user. Usernames are unique; a taken name
// fails with ErrDuplicateUsername.
//
// The password goes into the store verbatim. Plaintext storage is the
// observed contract of the source application and is preserved here
// deliberately; see DESIGN.md.
func (s *UserService) RegisterUser(username, password string) (models.User, error) {
	var existing string
	err := s.db.QueryRow("SELECT id FROM users WHERE username = ?", username).Scan(&existing)
	if err == nil {
		return models.User{}, models.ErrDuplicateUsername
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	user := models.User{
		ID:        uuid.New().String(),
		Username:  username,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.Exec("INSERT INTO users(id, username, password, created_at) VALUES(?, ?, ?, ?)",
		user.ID, user.Username, user.Password, user.CreatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return user, nil
}

// AuthenticateUser verifies a user's credentials by plaintext
// equality. A missing user and a wrong password are indistinguishable
// to the caller.
func (s *UserService) AuthenticateUser(username, password string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, password, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.Password, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	if user.Password != password {
		return models.User{}, models.ErrInvalidCredentials
	}
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return user, nil
}
