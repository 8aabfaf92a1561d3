package services

import (
	"context"
	"regexp"
	"sync"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/yishak-cs/BazaarSetu/internal/models"
)

// DemoOTP is the only code the mock verifier accepts
const DemoOTP = "123456"

var mobilePattern = regexp.MustCompile(`^\d{10}$`)

var demoNames = map[models.Role]string{
	models.RoleVendor:   "राज कुमार",
	models.RoleSupplier: "सुनील सप्लायर",
}

// Login is a verified user together with the cart session opened for them
type Login struct {
	User      models.User `json:"user"`
	SessionID string      `json:"session_id"`
}

// AuthService is a stand-in OTP flow: any 10-digit mobile gets an OTP and the
// fixed code DemoOTP verifies it.
type AuthService struct {
	sessions *SessionManager
	logger   *zap.Logger

	mu     sync.Mutex
	logins map[string]models.User
}

// NewAuthService creates a mock auth service that opens carts through sessions
func NewAuthService(sessions *SessionManager, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		sessions: sessions,
		logger:   logger,
		logins:   make(map[string]models.User),
	}
}

// SendOTP pretends to text an OTP to mobile
func (s *AuthService) SendOTP(_ context.Context, mobile string) error {
	if !mobilePattern.MatchString(mobile) {
		return ErrInvalidMobile
	}

	s.logger.Info("otp sent", zap.String("mobile", maskMobile(mobile)))
	return nil
}

// Verify checks otp for mobile and opens a cart session for the user
func (s *AuthService) Verify(ctx context.Context, mobile, otp string, role models.Role) (Login, error) {
	if !mobilePattern.MatchString(mobile) {
		return Login{}, ErrInvalidMobile
	}
	if otp != DemoOTP {
		return Login{}, ErrInvalidOTP
	}
	name, ok := demoNames[role]
	if !ok {
		return Login{}, errors.Wrapf(ErrInvalidRole, "role %q", role)
	}

	user := models.User{
		ID:       string(role) + "_" + mobile,
		Mobile:   mobile,
		Role:     role,
		Name:     name,
		Verified: true,
	}
	cart := s.sessions.Start(ctx, user.ID)

	s.mu.Lock()
	s.logins[cart.ID()] = user
	s.mu.Unlock()

	s.logger.Info("user verified",
		zap.String("user_id", user.ID),
		zap.String("session_id", cart.ID()))
	return Login{User: user, SessionID: cart.ID()}, nil
}

// User returns the user logged in under sessionID
func (s *AuthService) User(sessionID string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.logins[sessionID]
	return u, ok
}

// Logout ends the session and its cart
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.logins, sessionID)
	s.mu.Unlock()

	return s.sessions.End(ctx, sessionID)
}

func maskMobile(mobile string) string {
	if len(mobile) < 4 {
		return mobile
	}
	return "******" + mobile[len(mobile)-4:]
}
