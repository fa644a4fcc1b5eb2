package services

import (
	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/synesthesie/gallery/internal/config"
	"github.com/synesthesie/gallery/internal/models"
	"github.com/synesthesie/gallery/pkg/crypto"
	"gorm.io/gorm"
)

type UserService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewUserService(db *gorm.DB, cfg *config.Config) *UserService {
	return &UserService{db: db, cfg: cfg}
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFoundf("user %s", userID)
		}
		return nil, errors.Trace(err)
	}
	return &user, nil
}

// CreateUser stores a new account with a hashed password
func (s *UserService) CreateUser(username, email, password, name string, isAdmin bool) (*models.User, error) {
	hashedPassword, err := crypto.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, errors.Trace(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Name:     name,
		IsAdmin:  isAdmin,
		IsActive: true,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, errors.Annotatef(err, "creating user %q", username)
	}
	return user, nil
}

// CreateDefaultAdmin creates the default admin user if it doesn't exist
func (s *UserService) CreateDefaultAdmin() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", s.cfg.AdminUsername).Count(&count).Error; err != nil {
		return errors.Trace(err)
	}

	if count > 0 {
		return nil // Admin already exists
	}

	_, err := s.CreateUser(s.cfg.AdminUsername, s.cfg.AdminEmail, s.cfg.AdminPassword, "Administrator", true)
	return err
}
