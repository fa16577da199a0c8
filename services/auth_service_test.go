package services

import (
	"context"
	"testing"
	"time"

	"undangan.link/database/seeders"
	"undangan.link/pkg/sessiontoken"
	"undangan.link/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T, f *fixture) (IAuthService, sessiontoken.IService) {
	t.Helper()
	tokens, err := sessiontoken.New("", time.Hour)
	require.NoError(t, err)
	return NewAuthService(f.db, f.users, f.personalize, tokens, f.validator), tokens
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	svc, tokens := newAuthService(t, f)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "Rangga@Example.com", Password: "cinta123"})
	require.NoError(t, err)
	assert.Equal(t, "rangga@example.com", user.Email)
	assert.NotEqual(t, "cinta123", user.PasswordHash)

	// Kayıtla birlikte boş bir kişiselleştirme kaydı açılır
	p, err := f.personalize.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, p.CustomURL)
	assert.Empty(t, p.Gallery())

	result, err := svc.Login(ctx, LoginInput{Email: "rangga@example.com", Password: "cinta123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.UserID)
	assert.Equal(t, p.ID, result.PersonalizeID)

	claims, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, p.ID.String(), claims.PersonalizeID)
	assert.Equal(t, "rangga@example.com", claims.Email)
}

func TestAuthService_RegisterErrors(t *testing.T) {
	f := newFixture(t)
	svc, _ := newAuthService(t, f)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: seeders.DemoEmail, Password: "apa saja"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(ctx, RegisterInput{Email: "bukan-email", Password: "cinta123"})
	var ve *validation.Error
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "email")

	_, err = svc.Register(ctx, RegisterInput{Email: "pendek@example.com", Password: "123"})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "password")
}

func TestAuthService_LoginFailures(t *testing.T) {
	f := newFixture(t)
	svc, _ := newAuthService(t, f)
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginInput{Email: seeders.DemoEmail, Password: "salah"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Email: "tidak-ada@example.com", Password: "rahasia123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, KindUnauthorized, KindOf(err))
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newFixture(t)
	svc, _ := newAuthService(t, f)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, f.demo.UserID, ChangePasswordInput{CurrentPassword: "salah", NewPassword: "baru12345"})
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(ctx, f.demo.UserID, ChangePasswordInput{
		CurrentPassword: seeders.DemoPassword,
		NewPassword:     "baru12345",
	}))

	_, err = svc.Login(ctx, LoginInput{Email: seeders.DemoEmail, Password: seeders.DemoPassword})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Email: seeders.DemoEmail, Password: "baru12345"})
	assert.NoError(t, err)
}
