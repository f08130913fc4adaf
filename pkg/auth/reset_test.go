package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/coursehub/pkg/auth"
	"github.com/dmitrymomot/coursehub/pkg/email"
	"github.com/dmitrymomot/coursehub/pkg/jwt"
	"github.com/dmitrymomot/coursehub/svc/userstore"
)

const frontendURL = "https://app.example.com/"

type resetFixture struct {
	clock  *fakeClock
	store  *userstore.Memory
	codec  *jwt.Codec
	sender *MockEmailSender
	reset  *auth.ResetService
	pass   *auth.PasswordService
	user   *auth.User
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()

	clock := newClock()
	codec, err := jwt.New(jwt.Config{Secret: "test-secret"}, jwt.WithClock(clock.Now))
	require.NoError(t, err)

	store := userstore.NewMemory()
	sender := &MockEmailSender{}
	opts := []auth.Option{auth.WithClock(clock.Now), auth.WithBcryptCost(bcrypt.MinCost)}

	f := &resetFixture{
		clock:  clock,
		store:  store,
		codec:  codec,
		sender: sender,
		reset:  auth.NewResetService(store, codec, sender, frontendURL, opts...),
		pass:   auth.NewPasswordService(store, opts...),
	}
	f.user = register(t, f.pass, "reset@example.com", "pass1234")
	return f
}

// captureToken expects one delivered email and returns the token from its link.
func (f *resetFixture) captureToken(t *testing.T) *string {
	t.Helper()
	var token string
	f.sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
		return p.SendTo == f.user.Email && p.Tag == "password-reset"
	})).Run(func(args mock.Arguments) {
		p := args.Get(1).(email.SendEmailParams)
		idx := strings.Index(p.BodyText, "/reset-password/")
		require.GreaterOrEqual(t, idx, 0)
		rest := p.BodyText[idx+len("/reset-password/"):]
		token = strings.Fields(rest)[0]
	}).Return(nil).Once()
	return &token
}

func TestResetService_URL(t *testing.T) {
	t.Parallel()
	f := newResetFixture(t)
	assert.Equal(t, "https://app.example.com/reset-password/abc", f.reset.ResetURL("abc"))
}

func TestResetService_RequestAndConsume(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newResetFixture(t)

	token := f.captureToken(t)
	require.NoError(t, f.reset.RequestReset(ctx, "  RESET@example.com"))
	f.sender.AssertExpectations(t)
	require.NotEmpty(t, *token)

	stored, err := f.store.GetUserByID(ctx, f.user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ResetTokenHash)
	assert.NotEqual(t, *token, stored.ResetTokenHash)
	require.NotNil(t, stored.ResetExpiresAt)
	assert.Equal(t, f.clock.Now().Add(jwt.ResetTTL), stored.ResetExpiresAt.UTC())

	f.clock.Advance(time.Minute)
	user, err := f.reset.ConsumeReset(ctx, *token, "brandnew1", "brandnew1")
	require.NoError(t, err)
	assert.Empty(t, user.ResetTokenHash)
	require.NotNil(t, user.PasswordChangedAt)

	_, err = f.pass.Authenticate(ctx, f.user.Email, "brandnew1")
	assert.NoError(t, err)

	t.Run("consumed token cannot be reused", func(t *testing.T) {
		_, err := f.reset.ConsumeReset(ctx, *token, "another99", "another99")
		assert.ErrorIs(t, err, auth.ErrResetNotPending)
	})
}

func TestResetService_UnknownEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newResetFixture(t)

	err := f.reset.RequestReset(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
	f.sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)

	stored, err := f.store.GetUserByID(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ResetTokenHash)
}

func TestResetService_DeliveryFailureRollsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newResetFixture(t)

	var token string
	f.sender.On("SendEmail", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		p := args.Get(1).(email.SendEmailParams)
		idx := strings.Index(p.BodyText, "/reset-password/")
		token = strings.Fields(p.BodyText[idx+len("/reset-password/"):])[0]
	}).Return(errors.New("smtp down")).Once()

	err := f.reset.RequestReset(ctx, f.user.Email)
	assert.ErrorIs(t, err, auth.ErrEmailDeliveryFailed)

	stored, err := f.store.GetUserByID(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ResetTokenHash)
	assert.Nil(t, stored.ResetExpiresAt)

	require.NotEmpty(t, token)
	_, err = f.reset.ConsumeReset(ctx, token, "brandnew1", "brandnew1")
	assert.ErrorIs(t, err, auth.ErrResetNotPending)
}

func TestResetService_NewerTokenSupersedes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newResetFixture(t)

	first := f.captureToken(t)
	require.NoError(t, f.reset.RequestReset(ctx, f.user.Email))

	f.clock.Advance(2 * time.Second)
	second := f.captureToken(t)
	require.NoError(t, f.reset.RequestReset(ctx, f.user.Email))
	require.NotEqual(t, *first, *second)

	_, err := f.reset.ConsumeReset(ctx, *first, "brandnew1", "brandnew1")
	assert.ErrorIs(t, err, auth.ErrResetSuperseded)

	_, err = f.reset.ConsumeReset(ctx, *second, "brandnew1", "brandnew1")
	assert.NoError(t, err)
}

func TestResetService_ConsumeRejects(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		f := newResetFixture(t)
		token := f.captureToken(t)
		require.NoError(t, f.reset.RequestReset(ctx, f.user.Email))

		f.clock.Advance(jwt.ResetTTL)
		_, err := f.reset.ConsumeReset(ctx, *token, "brandnew1", "brandnew1")
		assert.ErrorIs(t, err, auth.ErrTokenExpired)
	})

	t.Run("session token", func(t *testing.T) {
		t.Parallel()
		f := newResetFixture(t)
		tok, err := f.codec.Issue(f.user.ID, jwt.PurposeSession, time.Hour)
		require.NoError(t, err)

		_, err = f.reset.ConsumeReset(ctx, tok.Value, "brandnew1", "brandnew1")
		assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()
		f := newResetFixture(t)
		_, err := f.reset.ConsumeReset(ctx, "not-a-token", "brandnew1", "brandnew1")
		assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	})

	t.Run("deleted user", func(t *testing.T) {
		t.Parallel()
		f := newResetFixture(t)
		token := f.captureToken(t)
		require.NoError(t, f.reset.RequestReset(ctx, f.user.Email))
		require.NoError(t, f.store.DeleteUser(ctx, f.user.ID))

		_, err := f.reset.ConsumeReset(ctx, *token, "brandnew1", "brandnew1")
		assert.ErrorIs(t, err, auth.ErrTokenInvalid)
	})

	t.Run("weak password keeps token pending", func(t *testing.T) {
		t.Parallel()
		f := newResetFixture(t)
		token := f.captureToken(t)
		require.NoError(t, f.reset.RequestReset(ctx, f.user.Email))

		_, err := f.reset.ConsumeReset(ctx, *token, "short", "short")
		require.Error(t, err)

		_, err = f.reset.ConsumeReset(ctx, *token, "brandnew1", "brandnew1")
		assert.NoError(t, err)
	})
}
