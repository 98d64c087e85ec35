package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/data/entity"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/data/repository"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/internal/dto/response"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/email"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/token"
	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/utils"

	"go.uber.org/zap"
)

const (
	otpRateWindow = 10 * time.Minute
	otpRateLimit  = 3
)

type AuthService interface {
	SendOTP(ctx context.Context, emailAddr string) (*response.OTPSentResponse, error)
	VerifyOTP(ctx context.Context, emailAddr, code string) (*response.AuthResponse, error)
	ResendOTP(ctx context.Context, emailAddr string) (*response.OTPSentResponse, error)
	GetMe(ctx context.Context, userID int64) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, name string) (*response.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	issuer *token.Issuer
	mailer email.Mailer
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	issuer *token.Issuer,
	mailer email.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		issuer: issuer,
		mailer: mailer,
		log:    log,
	}
}

func (s *authService) SendOTP(ctx context.Context, emailAddr string) (*response.OTPSentResponse, error) {
	// 1. Rate limit before any side effect
	count, err := s.repo.OTP.CountRecent(ctx, emailAddr, otpRateWindow)
	if err != nil {
		s.log.Error("Failed to check OTP rate limit", zap.Error(err), zap.String("email", emailAddr))
		return nil, fmt.Errorf("failed to send OTP")
	}
	if count >= otpRateLimit {
		s.log.Warn("OTP rate limit hit", zap.String("email", emailAddr), zap.Int("recent", count))
		return nil, fmt.Errorf("too many OTP requests, try again later")
	}

	// 2. Find or create the user
	user, err := s.repo.User.FindByEmail(ctx, emailAddr)
	if err != nil {
		s.log.Error("Failed to look up user", zap.Error(err), zap.String("email", emailAddr))
		return nil, fmt.Errorf("failed to send OTP")
	}
	if user == nil {
		user, err = s.repo.User.Create(ctx, emailAddr)
		if err != nil {
			s.log.Error("Failed to create user", zap.Error(err), zap.String("email", emailAddr))
			return nil, fmt.Errorf("failed to send OTP")
		}
		s.log.Info("User created via OTP request",
			zap.Int64("user_id", user.ID),
			zap.String("email", emailAddr))
	}

	return s.issueOTP(ctx, user, emailAddr)
}

// ResendOTP requires an existing user so the client can distinguish
// "never registered" from "code on its way".
func (s *authService) ResendOTP(ctx context.Context, emailAddr string) (*response.OTPSentResponse, error) {
	user, err := s.repo.User.FindByEmail(ctx, emailAddr)
	if err != nil {
		s.log.Error("Failed to look up user", zap.Error(err), zap.String("email", emailAddr))
		return nil, fmt.Errorf("failed to resend OTP")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	count, err := s.repo.OTP.CountRecent(ctx, emailAddr, otpRateWindow)
	if err != nil {
		s.log.Error("Failed to check OTP rate limit", zap.Error(err), zap.String("email", emailAddr))
		return nil, fmt.Errorf("failed to resend OTP")
	}
	if count >= otpRateLimit {
		s.log.Warn("OTP rate limit hit", zap.String("email", emailAddr), zap.Int("recent", count))
		return nil, fmt.Errorf("too many OTP requests, try again later")
	}

	return s.issueOTP(ctx, user, emailAddr)
}

// issueOTP supersedes any outstanding code, stores a fresh one and mails
// it. A mail failure fails the whole request: never report success when
// the user cannot have received the code.
func (s *authService) issueOTP(ctx context.Context, user *entity.User, emailAddr string) (*response.OTPSentResponse, error) {
	code := utils.GenerateOTP(s.config.OTP.Length)
	expiry := time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute
	expiresAt := time.Now().Add(expiry)

	if err := s.repo.OTP.InvalidateUserOTPs(ctx, user.ID, emailAddr); err != nil {
		s.log.Error("Failed to invalidate previous OTPs", zap.Error(err), zap.String("email", emailAddr))
		return nil, fmt.Errorf("failed to send OTP")
	}

	if _, err := s.repo.OTP.Create(ctx, user.ID, emailAddr, code, expiresAt); err != nil {
		s.log.Error("Failed to store OTP", zap.Error(err), zap.String("email", emailAddr))
		return nil, fmt.Errorf("failed to send OTP")
	}

	if err := s.mailer.SendOTP(emailAddr, code, expiry); err != nil {
		// The stored row stays; the next send supersedes it.
		s.log.Error("Failed to dispatch OTP email", zap.Error(err), zap.String("email", emailAddr))
		return nil, fmt.Errorf("failed to send OTP email")
	}

	s.log.Info("OTP sent",
		zap.String("email", emailAddr),
		zap.Time("expires_at", expiresAt))

	return &response.OTPSentResponse{
		Email:     emailAddr,
		ExpiresIn: int(expiry.Seconds()),
	}, nil
}

func (s *authService) VerifyOTP(ctx context.Context, emailAddr, code string) (*response.AuthResponse, error) {
	// One generic message for wrong and expired codes alike.
	otp, err := s.repo.OTP.FindByCodeAndEmail(ctx, code, emailAddr)
	if err != nil {
		s.log.Error("Failed to look up OTP", zap.Error(err), zap.String("email", emailAddr))
		return nil, fmt.Errorf("failed to verify OTP")
	}
	if otp == nil {
		return nil, fmt.Errorf("invalid or expired code")
	}

	user, err := s.repo.User.FindByID(ctx, strconv.FormatInt(otp.UserID, 10))
	if err != nil {
		s.log.Error("Failed to load user for OTP", zap.Error(err), zap.Int64("user_id", otp.UserID))
		return nil, fmt.Errorf("failed to verify OTP")
	}
	if user == nil {
		s.log.Error("OTP references missing user", zap.Int64("user_id", otp.UserID))
		return nil, fmt.Errorf("user not found")
	}

	if err := s.repo.OTP.MarkAsUsed(ctx, otp.ID); err != nil {
		s.log.Warn("Failed to mark OTP as used", zap.Error(err), zap.Int64("otp_id", otp.ID))
		// Continue anyway
	}

	if err := s.repo.User.MarkEmailVerified(ctx, user.ID); err != nil {
		s.log.Error("Failed to mark email verified", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("failed to verify OTP")
	}
	user.EmailVerified = true

	if err := s.repo.User.UpdateLastLogin(ctx, user.ID); err != nil {
		s.log.Warn("Failed to update last login", zap.Error(err), zap.Int64("user_id", user.ID))
	}

	if err := s.refreshOnboarding(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to verify OTP")
	}

	tok, err := s.issuer.GenerateUserToken(user.ID, emailAddr)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("failed to verify OTP")
	}

	s.log.Info("OTP verified",
		zap.Int64("user_id", user.ID),
		zap.String("email", emailAddr))

	return &response.AuthResponse{
		User:  response.UserToResponse(user),
		Token: tok,
	}, nil
}

func (s *authService) GetMe(ctx context.Context, userID int64) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, strconv.FormatInt(userID, 10))
	if err != nil {
		s.log.Error("Failed to load user", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to get profile")
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	if err := s.refreshOnboarding(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to get profile")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID int64, name string) (*response.UserResponse, error) {
	if err := s.repo.User.UpdateName(ctx, userID, name); err != nil {
		s.log.Error("Failed to update name", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to update profile")
	}

	user, err := s.repo.User.FindByID(ctx, strconv.FormatInt(userID, 10))
	if err != nil || user == nil {
		s.log.Error("Failed to reload user after profile update", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to update profile")
	}

	s.log.Info("Profile updated, onboarding complete", zap.Int64("user_id", userID))

	resp := response.UserToResponse(user)
	return &resp, nil
}

// refreshOnboarding applies the trust/re-derive rule: a stored true is
// final (no flip-flop from a read race), a stored false is re-derived
// from profile state so a stale flag self-heals.
func (s *authService) refreshOnboarding(ctx context.Context, user *entity.User) error {
	if user.OnboardingCompleted {
		return nil
	}

	completed, err := s.repo.User.VerifyOnboardingStatus(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to re-derive onboarding status", zap.Error(err), zap.Int64("user_id", user.ID))
		return err
	}
	user.OnboardingCompleted = completed
	return nil
}
