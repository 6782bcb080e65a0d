package auth

import (
	"sync"

	apperrors "minhasfinancas/internal/errors"
	"minhasfinancas/internal/logger"
	"minhasfinancas/internal/models"
	"minhasfinancas/internal/services"
)

// State describes where a client stands in the authentication flow.
type State string

const (
	// StateNeedSetup means no user exists yet; the first registration is open
	// and the resulting user becomes the admin.
	StateNeedSetup State = "need_setup"
	// StateNeedLogin means at least one user exists and credentials are
	// required.
	StateNeedLogin State = "need_login"
	// StateAuthenticated means a user is logged in on this manager.
	StateAuthenticated State = "authenticated"
)

// Manager is the thin gate in front of the financial data. It tracks one
// authenticated user at a time and decides which login methods are offered.
type Manager struct {
	users services.UserServicer
	probe BiometricProbe

	mu      sync.RWMutex
	current *models.User
}

// NewManager creates a Manager backed by the given user service and
// biometric probe.
func NewManager(users services.UserServicer, probe BiometricProbe) *Manager {
	return &Manager{users: users, probe: probe}
}

// State reports the current authentication state. With no registered users
// the flow starts at setup, not login.
func (m *Manager) State() (State, error) {
	m.mu.RLock()
	current := m.current
	m.mu.RUnlock()
	if current != nil {
		return StateAuthenticated, nil
	}

	count, err := m.users.CountActiveUsers()
	if err != nil {
		return "", err
	}
	if count == 0 {
		return StateNeedSetup, nil
	}
	return StateNeedLogin, nil
}

// BiometricStatus reports whether biometric login can be offered on this
// platform.
func (m *Manager) BiometricStatus() BiometricStatus {
	return m.probe.Status()
}

// LoginWithPassword authenticates with email and password.
func (m *Manager) LoginWithPassword(email, password string) (*models.User, error) {
	user, err := m.users.Authenticate(email, password)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.current = user
	m.mu.Unlock()

	logger.Get().Infow("user authenticated", "user_id", user.ID, "method", "password")
	return user, nil
}

// LoginWithBiometric authenticates a known user by platform biometrics. It
// succeeds only when the user opted in and the probe reports availability;
// the actual sensor challenge happens on the client before this call.
func (m *Manager) LoginWithBiometric(userID uint) (*models.User, error) {
	if status := m.probe.Status(); status != BiometricAvailable {
		return nil, apperrors.WithMessage(apperrors.ErrBiometricDisabled, "biometric hardware unavailable: "+string(status))
	}

	user, err := m.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.UseBiometric {
		return nil, apperrors.ErrBiometricDisabled
	}

	if err := m.users.TouchLastAccess(user.ID); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.current = user
	m.mu.Unlock()

	logger.Get().Infow("user authenticated", "user_id", user.ID, "method", "biometric")
	return user, nil
}

// CurrentUser returns the logged-in user, or nil.
func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Logout clears the authenticated user.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
}
