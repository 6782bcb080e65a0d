package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "minhasfinancas/internal/errors"
	"minhasfinancas/internal/models"
	"minhasfinancas/internal/watch"
)

// userService handles user management and password authentication.
type userService struct {
	db  *gorm.DB
	hub *watch.Hub
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, hub *watch.Hub) UserServicer {
	return &userService{db: db, hub: hub}
}

// CreateUser registers a new user. The first user ever registered becomes
// the admin. Emails are stored and compared exactly as given; uniqueness is
// enforced among active users only, so a deactivated user's email can be
// reused.
func (s *userService) CreateUser(name, email, password string, useBiometric bool, photoPath *string) (*models.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("email = ? AND active = ?", email, true).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	activeUsers, err := s.CountActiveUsers()
	if err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		UseBiometric: useBiometric,
		PhotoPath:    photoPath,
		IsAdmin:      activeUsers == 0,
		Active:       true,
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	s.hub.Notify(watch.TableUsers)
	return user, nil
}

// GetUserByID retrieves a user by ID, active or not.
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &user, nil
}

// GetUserByEmail retrieves an active user by exact email match.
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ? AND active = ?", email, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &user, nil
}

// ListUsers retrieves all active users ordered by name.
func (s *userService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Where("active = ?", true).Order("name").Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return users, nil
}

// CountActiveUsers returns the number of active users. Zero means the app
// has never been set up.
func (s *userService) CountActiveUsers() (int64, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("active = ?", true).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return count, nil
}

// Authenticate verifies an email/password pair and stamps the user's last
// access on success. Unknown email and wrong password return the same
// error.
func (s *userService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrUserNotFound.Code {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(user, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.TouchLastAccess(user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile updates a user's editable profile fields.
func (s *userService) UpdateProfile(id uint, fields UserUpdateFields) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil {
		if strings.TrimSpace(*fields.Name) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
		}
		updates["name"] = strings.TrimSpace(*fields.Name)
	}
	if fields.UseBiometric != nil {
		updates["use_biometric"] = *fields.UseBiometric
	}
	if fields.PhotoPath != nil {
		if *fields.PhotoPath == "" {
			updates["photo_path"] = nil
		} else {
			updates["photo_path"] = *fields.PhotoPath
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		s.hub.Notify(watch.TableUsers)
	}

	return user, nil
}

// DeactivateUser soft-deletes a user. The row is kept for audit history.
func (s *userService) DeactivateUser(id uint) error {
	result := s.db.Model(&models.User{}).
		Where("id = ? AND active = ?", id, true).
		Update("active", false)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	s.hub.Notify(watch.TableUsers)
	return nil
}

// TouchLastAccess stamps the user's last access with the current time.
func (s *userService) TouchLastAccess(id uint) error {
	now := time.Now()
	if err := s.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("last_access", now).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

// HashPassword returns the bcrypt digest of a plaintext password.
func (s *userService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against the stored digest.
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
