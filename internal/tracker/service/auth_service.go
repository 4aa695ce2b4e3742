package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sttock-tracker/internal/entity"
	"sttock-tracker/internal/tracker/config"
	"sttock-tracker/internal/tracker/dto"
	"sttock-tracker/internal/tracker/repository"
	"sttock-tracker/pkg/common"
	"sttock-tracker/pkg/logger"
	"sttock-tracker/pkg/token"
	"sttock-tracker/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const verificationTokenTTL = 24 * time.Hour

// AuthService is the credential store boundary: it validates credentials,
// creates accounts, issues sessions and resolves the current session.
type AuthService interface {
	ValidateCredentials(ctx context.Context, identifier, secret string) bool
	Login(ctx context.Context, identifier, secret, userAgent, clientIP string) (*dto.LoginResponse, error)
	SignUp(ctx context.Context, identifier, secret string) *dto.SignUpResponse
	SignOut(ctx context.Context, tokenString string) uint
	CurrentSession(ctx context.Context, tokenString string) *dto.UserResponse
	VerifyEmail(ctx context.Context, verificationToken string) error
}

// NewAuthService creates a new auth service.
func NewAuthService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	verificationRepo repository.VerificationRepository,
	emailSvc EmailService,
	tokenMgr *token.Manager,
	log *logger.Logger,
) AuthService {
	return &authService{
		cfg:              cfg,
		userRepo:         userRepo,
		sessionRepo:      sessionRepo,
		verificationRepo: verificationRepo,
		emailSvc:         emailSvc,
		tokenMgr:         tokenMgr,
		logger:           log,
	}
}

type authService struct {
	cfg              *config.Config
	userRepo         repository.UserRepository
	sessionRepo      repository.SessionRepository
	verificationRepo repository.VerificationRepository
	emailSvc         EmailService
	tokenMgr         *token.Manager
	logger           *logger.Logger
}

func (s *authService) emailDomain() string {
	if s.cfg.Auth.EmailDomain != "" {
		return s.cfg.Auth.EmailDomain
	}
	return common.DefaultEmailDomain
}

// authenticate resolves the identifier to an account and checks the
// secret. Every failure collapses to ErrInvalidCredentials except the
// distinct unverified-email outcome.
func (s *authService) authenticate(ctx context.Context, identifier, secret string) (*entity.User, error) {
	email := utils.SynthesizeEmail(identifier, s.emailDomain())

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("Credential lookup failed", logger.ErrorField(err))
		}
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(secret)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	return user, nil
}

// ValidateCredentials reports whether the identifier/secret pair is valid.
// It returns false on any authentication error; wrong credentials and
// transport failures are indistinguishable to the caller.
func (s *authService) ValidateCredentials(ctx context.Context, identifier, secret string) bool {
	_, err := s.authenticate(ctx, identifier, secret)
	return err == nil
}

// Login validates credentials and issues a new session.
func (s *authService) Login(ctx context.Context, identifier, secret, userAgent, clientIP string) (*dto.LoginResponse, error) {
	user, err := s.authenticate(ctx, identifier, secret)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.issueSession(ctx, user, userAgent, clientIP)
	if err != nil {
		s.logger.Error("Failed to issue session", logger.ErrorField(err), logger.Field("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	return &dto.LoginResponse{
		Authenticated: true,
		Token:         accessToken,
		User:          s.mapUser(user),
	}, nil
}

func (s *authService) issueSession(ctx context.Context, user *entity.User, userAgent, clientIP string) (string, error) {
	accessToken, err := s.tokenMgr.Generate(user.ID)
	if err != nil {
		return "", err
	}

	session := &entity.Session{
		UserID:    user.ID,
		Token:     accessToken,
		UserAgent: userAgent,
		ClientIP:  clientIP,
		ExpiresAt: time.Now().Add(s.tokenMgr.Expiry()),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", err
	}
	return accessToken, nil
}

// SignUp creates an account. Three outcomes are possible: immediate
// success with an active session, success pending email verification
// (message set, no session), or failure with a message.
func (s *authService) SignUp(ctx context.Context, identifier, secret string) *dto.SignUpResponse {
	email := utils.SynthesizeEmail(identifier, s.emailDomain())
	username := utils.EmailLocalPart(email, common.FallbackUsername)

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", logger.ErrorField(err))
		return &dto.SignUpResponse{Success: false, Message: "Could not create the account."}
	}

	user := &entity.User{
		Email:         email,
		Username:      username,
		Password:      string(hash),
		EmailVerified: !s.cfg.Auth.RequireEmailVerification,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrSignUpUnsupported) {
			return &dto.SignUpResponse{Success: false, Message: "Sign-up is not available."}
		}
		s.logger.Warn("Failed to create user", logger.ErrorField(err), logger.StringField("email", email))
		return &dto.SignUpResponse{Success: false, Message: "Could not create the account."}
	}

	if s.cfg.Auth.RequireEmailVerification {
		s.sendVerification(ctx, user)
		return &dto.SignUpResponse{
			Success: true,
			Message: "Account created. Please verify your email address, then sign in.",
		}
	}

	accessToken, err := s.issueSession(ctx, user, "", "")
	if err != nil {
		// The account exists but no session could be issued; fall back to
		// the login form, same as the verification-pending outcome.
		s.logger.Error("Failed to issue session after sign-up", logger.ErrorField(err), logger.Field("user_id", user.ID))
		return &dto.SignUpResponse{
			Success: true,
			Message: "Account created. Please sign in.",
		}
	}

	return &dto.SignUpResponse{
		Success: true,
		Token:   accessToken,
		User:    s.mapUser(user),
	}
}

func (s *authService) sendVerification(ctx context.Context, user *entity.User) {
	verificationToken := uuid.NewString()
	if err := s.verificationRepo.Store(ctx, verificationToken, user.ID, verificationTokenTTL); err != nil {
		s.logger.Error("Failed to store verification token", logger.ErrorField(err), logger.Field("user_id", user.ID))
		return
	}
	if err := s.emailSvc.SendVerificationEmail(ctx, user.Email, user.Username, verificationToken); err != nil {
		s.logger.Error("Failed to send verification email", logger.ErrorField(err), logger.StringField("email", user.Email))
	}
}

// VerifyEmail consumes a verification token and marks the account verified.
func (s *authService) VerifyEmail(ctx context.Context, verificationToken string) error {
	userID, err := s.verificationRepo.Consume(ctx, verificationToken)
	if err != nil {
		return err
	}
	if err := s.userRepo.MarkVerified(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	s.logger.Info("Email verified", logger.Field("user_id", userID))
	return nil
}

// SignOut deletes the session and returns the user ID it belonged to, or
// zero when none was found. Best effort: failures are only logged.
func (s *authService) SignOut(ctx context.Context, tokenString string) uint {
	var userID uint
	if session, err := s.sessionRepo.FindByToken(ctx, tokenString); err == nil {
		userID = session.UserID
	}
	if err := s.sessionRepo.DeleteByToken(ctx, tokenString); err != nil {
		s.logger.Warn("Failed to delete session on sign-out", logger.ErrorField(err))
	}
	return userID
}

// CurrentSession resolves a bearer token to its session, or nil both when
// none exists and when retrieval fails. The expected "no session" miss is
// kept out of warning logs.
func (s *authService) CurrentSession(ctx context.Context, tokenString string) *dto.UserResponse {
	if tokenString == "" {
		return nil
	}

	userID, err := s.tokenMgr.Validate(tokenString)
	if err != nil {
		s.logger.Debug("Session token rejected", logger.ErrorField(err))
		return nil
	}

	if _, err := s.sessionRepo.FindByToken(ctx, tokenString); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			s.logger.Debug("No current session")
		} else {
			s.logger.Warn("Failed to retrieve session", logger.ErrorField(err))
		}
		return nil
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("Failed to load user for session", logger.ErrorField(err), logger.Field("user_id", userID))
		return nil
	}

	return s.mapUser(user)
}

// mapUser derives the display username from the account's email
// local-part, with a generic fallback when no identity is present.
func (s *authService) mapUser(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		Username:        utils.EmailLocalPart(user.Email, common.FallbackUsername),
		IsAuthenticated: true,
	}
}
