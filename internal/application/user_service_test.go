package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/edu-platform/internal/domain/entity"
	"github.com/oksasatya/edu-platform/pkg/apperror"
	"github.com/oksasatya/edu-platform/pkg/helpers"
	mailtpl "github.com/oksasatya/edu-platform/pkg/mailer/templates"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, pair, err := f.users.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStudent, u.Role)
	assert.NotEqual(t, "password123", u.Password)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, []string{mailtpl.Welcome}, f.pub.templates())

	claims, err := f.users.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "student", claims.Role)

	_, _, err = f.users.Register(ctx, RegisterInput{Name: "Ana 2", Email: "ANA@example.com", Password: "password123"})
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	got, _, err := f.users.Login(ctx, LoginInput{Email: "ana@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, _, err = f.users.Login(ctx, LoginInput{Email: "ana@example.com", Password: "wrong-password"})
	assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
	_, _, err = f.users.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "password123"})
	assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
}

func TestAuthenticateUpgradesWeakHash(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "Ana")

	stored, err := f.store.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	old, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost+1)
	require.NoError(t, err)
	stored.Password = string(old)
	require.NoError(t, f.store.Users.Update(ctx, stored))
	require.True(t, helpers.NeedsRehash(stored.Password))

	_, err = f.users.Authenticate(ctx, "ana@example.com", "password123")
	require.NoError(t, err)

	stored, err = f.store.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, helpers.NeedsRehash(stored.Password))
	assert.True(t, helpers.CompareHashAndPassword(stored.Password, "password123"))
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.users.Register(context.Background(), RegisterInput{Name: "", Email: "nope", Password: "short"})
	ae, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, ae.Kind)
	assert.Equal(t, "is required", ae.Details["name"])
	assert.Equal(t, "must be a valid email", ae.Details["email"])
	assert.Contains(t, ae.Details, "password")
}

func TestRefreshRotatesTokens(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u, pair, err := f.users.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "password123"})
	require.NoError(t, err)

	got, next, err := f.users.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	before, err := f.users.JWT.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	after, err := f.users.JWT.ParseRefreshToken(next.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, before.SessionID, after.SessionID)

	_, _, err = f.users.Refresh(ctx, pair.AccessToken)
	assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
	_, _, err = f.users.Refresh(ctx, "")
	assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "Ana")

	name, phone, pwd := "Ana Maria", "+628123456789", "new-password"
	got, err := f.users.UpdateProfile(ctx, u.ID, UpdateProfileInput{Name: &name, ContactNumber: &phone, Password: &pwd})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got.Name)
	assert.Equal(t, phone, got.ContactNumber)
	assert.Equal(t, u.Email, got.Email)

	_, _, err = f.users.Login(ctx, LoginInput{Email: u.Email, Password: "new-password"})
	require.NoError(t, err)

	_, err = f.users.UpdateProfile(ctx, "missing", UpdateProfileInput{Name: &name})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestUploadProfilePhoto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "Ana")

	got, err := f.users.UploadProfilePhoto(ctx, u.ID, Upload{Reader: strReader("png"), ContentType: "image/png", Filename: "me.png"})
	require.NoError(t, err)
	assert.Contains(t, got.ProfilePhoto, "avatars/"+u.ID+"/")

	f.users.Storage = nil
	_, err = f.users.UploadProfilePhoto(ctx, u.ID, Upload{Reader: strReader("png"), ContentType: "image/png"})
	assert.ErrorIs(t, err, helpers.ErrStorageNotConfigured)
}

func TestDeleteUserDoesNotCascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "Admin")
	student := f.user(t, "Student")
	c := f.course(t, "Go", admin.ID)
	require.NoError(t, f.courses.Enroll(ctx, c.ID, student.ID))

	require.NoError(t, f.users.DeleteUser(ctx, student.ID))
	assert.True(t, apperror.Is(f.users.DeleteUser(ctx, student.ID), apperror.KindNotFound))

	got, err := f.courses.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{student.ID}, got.EnrolledStudents)
	assert.Empty(t, got.Students)

	users, err := f.users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, admin.ID, users[0].ID)
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "Ana")

	require.NoError(t, f.users.RequestPasswordReset(ctx, "unknown@example.com"))
	assert.Empty(t, f.resets.tokens)

	require.NoError(t, f.users.RequestPasswordReset(ctx, u.Email))
	require.Len(t, f.resets.tokens, 1)
	assert.Contains(t, f.pub.templates(), mailtpl.PasswordReset)

	var token string
	for k := range f.resets.tokens {
		token = k
	}
	require.NoError(t, f.users.ResetPassword(ctx, ResetPasswordInput{Token: token, Password: "brand-new-pass"}))
	_, _, err := f.users.Login(ctx, LoginInput{Email: u.Email, Password: "brand-new-pass"})
	require.NoError(t, err)

	err = f.users.ResetPassword(ctx, ResetPasswordInput{Token: token, Password: "another-pass"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}
