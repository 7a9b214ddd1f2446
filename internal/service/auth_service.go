package service

import (
	"context"
	"errors"
	"fmt"

	"nestgirl/internal/feed"
	"nestgirl/internal/model"
	"nestgirl/internal/repository"
	"nestgirl/internal/session"
	"nestgirl/internal/utils"

	"go.uber.org/zap"
)

var (
	ErrAlreadyRegistered  = errors.New("this phone number is already registered")
	ErrNotRegistered      = errors.New("this phone number is not registered")
	ErrInvalidCredentials = errors.New("incorrect password")
)

// LoginResult is what a successful login or signup hands back to the
// handler layer.
type LoginResult struct {
	Profile      *model.Profile
	Token        string
	FirstSession bool
}

// AuthService provides signup, login, logout and session refresh.
type AuthService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*LoginResult, error)
	Login(ctx context.Context, phone, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Refresh(ctx context.Context, token string) (*model.Profile, error)
}

type authService struct {
	users      repository.UserRepository
	sessions   *session.Store
	jwtUtil    *utils.JWTUtil
	hub        *feed.Hub
	adminPhone string
	log        *zap.SugaredLogger
}

// NewAuthService creates a new AuthService. adminPhone is the legacy
// passwordless admin entry; empty disables it.
func NewAuthService(users repository.UserRepository, sessions *session.Store, jwtUtil *utils.JWTUtil, hub *feed.Hub, adminPhone string, log *zap.SugaredLogger) AuthService {
	return &authService{
		users:      users,
		sessions:   sessions,
		jwtUtil:    jwtUtil,
		hub:        hub,
		adminPhone: adminPhone,
		log:        log,
	}
}

// Signup creates a profile, then logs the new user straight in. The
// resulting session carries the one-shot first-session flag that drives the
// onboarding walkthrough.
func (s *authService) Signup(ctx context.Context, req model.SignupRequest) (*LoginResult, error) {
	existing, err := s.users.FindByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &model.Profile{
		Phone:              req.Phone,
		Name:               req.Name,
		PasswordHash:       hashed,
		DOB:                req.DOB,
		HeightCM:           req.HeightCM,
		WeightKG:           req.WeightKG,
		Status:             req.Status,
		MaternalStatus:     req.MaternalStatus,
		PeriodStartDate:    req.PeriodStartDate,
		CycleLength:        req.CycleLength,
		IsCycleRegular:     req.IsCycleRegular,
		PregnancyStartDate: req.PregnancyStartDate,
	}
	if err := s.users.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	s.hub.Notify(feed.CollectionUsers)

	token, err := s.jwtUtil.GenerateToken(profile.Phone, profile.Role())
	if err != nil {
		return nil, fmt.Errorf("user created, but failed to generate token: %w", err)
	}
	if err := s.sessions.Put(ctx, &repository.SessionRecord{
		Token:        token,
		Phone:        profile.Phone,
		Profile:      *profile,
		FirstSession: true,
	}); err != nil {
		return nil, fmt.Errorf("user created, but failed to open session: %w", err)
	}

	s.log.Infow("new signup", "phone", profile.Phone, "status", profile.Status)
	return &LoginResult{Profile: profile, Token: token, FirstSession: true}, nil
}

// Login authenticates by phone. The admin phone skips the password check
// entirely and receives a synthetic admin profile; everyone else is looked
// up in the users collection and checked against their bcrypt hash.
func (s *authService) Login(ctx context.Context, phone, password string) (*LoginResult, error) {
	if s.adminPhone != "" && phone == s.adminPhone {
		return s.adminLogin(ctx, phone)
	}

	profile, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("error finding user by phone: %w", err)
	}
	if profile == nil {
		return nil, ErrNotRegistered
	}
	if !utils.CheckPasswordHash(password, profile.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(profile.Phone, profile.Role())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.sessions.Put(ctx, &repository.SessionRecord{
		Token:   token,
		Phone:   profile.Phone,
		Profile: *profile,
	}); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	return &LoginResult{Profile: profile, Token: token}, nil
}

func (s *authService) adminLogin(ctx context.Context, phone string) (*LoginResult, error) {
	profile := &model.Profile{
		Phone:   phone,
		Name:    "Admin",
		Status:  model.StatusMother,
		IsAdmin: true,
	}
	token, err := s.jwtUtil.GenerateToken(phone, model.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate admin token: %w", err)
	}
	if err := s.sessions.Put(ctx, &repository.SessionRecord{
		Token:   token,
		Phone:   phone,
		Profile: *profile,
	}); err != nil {
		return nil, fmt.Errorf("failed to open admin session: %w", err)
	}
	s.log.Infow("admin login via configured phone", "phone", phone)
	return &LoginResult{Profile: profile, Token: token}, nil
}

// Logout closes the session. Idempotent.
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Logout(ctx, token)
}

// Refresh re-fetches the session's profile from the users collection.
func (s *authService) Refresh(ctx context.Context, token string) (*model.Profile, error) {
	return s.sessions.Refresh(ctx, token)
}
