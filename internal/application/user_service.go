package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/internal/domain/repository"
	"github.com/oksasatya/edu-platform/pkg/apperror"
	"github.com/oksasatya/edu-platform/pkg/helpers"
	"github.com/oksasatya/edu-platform/pkg/metrics"
	"github.com/oksasatya/edu-platform/pkg/validation"
)

var errInvalidCredentials = apperror.Unauthenticated("invalid credentials")

const defaultResetTTL = 30 * time.Minute

type UserService struct {
	Base
	JWT      *helpers.JWTManager
	Sessions *helpers.SessionStore
	Resets   ResetTokens
	ResetTTL time.Duration
}

func NewUserService(base Base, jwt *helpers.JWTManager, sessions *helpers.SessionStore, resets ResetTokens, resetTTL time.Duration) *UserService {
	return &UserService{Base: base, JWT: jwt, Sessions: sessions, Resets: resets, ResetTTL: resetTTL}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type RegisterInput struct {
	Name          string `json:"name" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,pwd"`
	ContactNumber string `json:"contact_number" validate:"max=32"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=100"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=32"`
	Password      *string `json:"password" validate:"omitempty,pwd"`
}

type ResetPasswordInput struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,pwd"`
}

// Register creates a student account and signs it in.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, TokenPair, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, TokenPair{}, err
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("hash password: %w", err)
	}
	now := s.now()
	u := &entity.User{
		ID:            s.newID(),
		Name:          in.Name,
		Email:         in.Email,
		Password:      hash,
		Role:          entity.RoleStudent,
		ContactNumber: in.ContactNumber,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Store.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, TokenPair{}, apperror.Conflict("user already exists")
		}
		return nil, TokenPair{}, fmt.Errorf("create user: %w", err)
	}
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	metrics.RecordEvent(metrics.EventRegistered)
	s.Notify.Welcome(ctx, u)
	return u, pair, nil
}

// Authenticate checks credentials without issuing tokens.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Store.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, errInvalidCredentials
	}
	if helpers.NeedsRehash(u.Password) {
		s.rehash(ctx, u, password)
	}
	return u, nil
}

// rehash upgrades a stored hash to the current cost. Failures only get logged.
func (s *UserService) rehash(ctx context.Context, u *entity.User, password string) {
	hash, err := helpers.HashPassword(password)
	if err == nil {
		u.Password = hash
		u.UpdatedAt = s.Now()
		err = s.Store.Users.Update(ctx, u)
	}
	if err != nil {
		helpers.LogWarn(s.Logger, "password rehash failed", err, logrus.Fields{"user_id": u.ID})
	}
}

func (s *UserService) Login(ctx context.Context, in LoginInput) (*entity.User, TokenPair, error) {
	if err := validation.Struct(in); err != nil {
		return nil, TokenPair{}, err
	}
	u, err := s.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// issueTokens starts a new session, replacing any previous one.
func (s *UserService) issueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, string(u.Role), sid)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generate access token: %w", err)
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, string(u.Role), sid)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.Sessions.Save(ctx, u.ID, sid, string(u.Role)); err != nil {
		return TokenPair{}, fmt.Errorf("save session: %w", err)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session id and both tokens.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*entity.User, TokenPair, error) {
	if refreshToken == "" {
		return nil, TokenPair{}, apperror.Unauthenticated("missing refresh token")
	}
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, apperror.Unauthenticated("invalid refresh token").Wrap(err)
	}
	ok, err := s.Sessions.Valid(ctx, claims.UserID, claims.SessionID)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("check session: %w", err)
	}
	if !ok {
		return nil, TokenPair{}, apperror.Unauthenticated("session expired")
	}
	u, err := s.Store.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, TokenPair{}, errInvalidCredentials
		}
		return nil, TokenPair{}, fmt.Errorf("load user: %w", err)
	}
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *UserService) Logout(ctx context.Context, userID string) error {
	if err := s.Sessions.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	u, err := s.Store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.ContactNumber != nil {
		u.ContactNumber = *in.ContactNumber
	}
	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.Password = hash
	}
	u.UpdatedAt = s.now()
	if err := s.Store.Users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func (s *UserService) UploadProfilePhoto(ctx context.Context, userID string, f Upload) (*entity.User, error) {
	u, err := s.Store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	url, err := s.uploadImage(ctx, "avatars", u.ID, f)
	if err != nil {
		return nil, err
	}
	u.ProfilePhoto = url
	u.UpdatedAt = s.now()
	if err := s.Store.Users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Store.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes the account only; references held by other documents stay.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.Store.Users.Delete(ctx, id); err != nil {
		return notFound(err, "user")
	}
	if err := s.Sessions.Delete(ctx, id); err != nil {
		s.log().WithError(err).WithField("user_id", id).Warn("delete session failed")
	}
	return nil
}

// RequestPasswordReset mails a single-use token. Unknown emails succeed silently.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	if s.Resets == nil {
		return errors.New("password reset not configured")
	}
	u, err := s.Store.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	token, err := helpers.GenToken()
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}
	ttl := s.ResetTTL
	if ttl <= 0 {
		ttl = defaultResetTTL
	}
	if err := s.Resets.Put(ctx, token, u.ID, ttl); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	s.Notify.PasswordReset(ctx, u, token, ttl)
	return nil
}

// ResetPassword consumes the token, sets the password and ends the current session.
func (s *UserService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	if s.Resets == nil {
		return errors.New("password reset not configured")
	}
	userID, ok, err := s.Resets.Take(ctx, in.Token)
	if err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}
	if !ok {
		return apperror.Validation("invalid or expired token").
			WithDetails(map[string]string{"token": "is invalid or expired"})
	}
	u, err := s.Store.Users.GetByID(ctx, userID)
	if err != nil {
		return notFound(err, "user")
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.Password = hash
	u.UpdatedAt = s.now()
	if err := s.Store.Users.Update(ctx, u); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if err := s.Sessions.Delete(ctx, u.ID); err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Warn("delete session failed")
	}
	return nil
}
