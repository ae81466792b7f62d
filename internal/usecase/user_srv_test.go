package usecase

import (
	"context"
	"testing"
	"time"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) sessionsOf(userID uuid.UUID) []entity.Session {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []entity.Session
	for _, s := range f.store.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.svc.User.CreateUser(ctx, &request.CreateUserRequest{
		FullName: "Marta Quay",
		Email:    "Marta@Boat.test",
		Password: "s3cret-pass",
		Role:     "crew",
	})
	require.NoError(t, err)
	assert.Equal(t, "marta@boat.test", user.Email)

	auth, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "MARTA@boat.test", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, auth.UserID)
	assert.Equal(t, entity.RoleCrew, auth.Role)
	assert.Equal(t, fixtureNow.Add(12*time.Hour), auth.ExpiresAt)
	assert.NotEmpty(t, auth.Token)

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		_, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "marta@boat.test", Password: "not-the-one"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "nobody@boat.test", Password: "not-the-one"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		require.NoError(t, f.svc.Auth.Logout(ctx, auth.Token))
		sessions := f.sessionsOf(uuid.MustParse(user.ID))
		require.Len(t, sessions, 1)
		assert.NotNil(t, sessions[0].RevokedAt)

		assert.ErrorIs(t, f.svc.Auth.Logout(ctx, "not-a-token"), ErrInvalidID)
	})

	t.Run("inactive user", func(t *testing.T) {
		_, err := f.svc.User.UpdateUser(ctx, user.ID, &request.UpdateUserRequest{
			FullName: "Marta Quay",
			Role:     "crew",
			IsActive: ptr(false),
		})
		require.NoError(t, err)

		_, err = f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "marta@boat.test", Password: "s3cret-pass"})
		assert.ErrorIs(t, err, ErrUserInactive)
	})
}

func TestDeactivationRevokesSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.svc.User.CreateUser(ctx, &request.CreateUserRequest{
		FullName: "Joao Deck",
		Email:    "joao@boat.test",
		Password: "harbour-pass",
		Role:     "seller",
		AgencyID: ptr(f.agency.ID.String()),
	})
	require.NoError(t, err)
	assert.Equal(t, f.agency.ID.String(), *user.AgencyID)

	for range 2 {
		_, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "joao@boat.test", Password: "harbour-pass"})
		require.NoError(t, err)
	}

	updated, err := f.svc.User.UpdateUser(ctx, user.ID, &request.UpdateUserRequest{
		FullName: "Joao Deck",
		Role:     "seller",
		IsActive: ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Nil(t, updated.AgencyID)

	sessions := f.sessionsOf(uuid.MustParse(user.ID))
	require.Len(t, sessions, 2)
	for _, s := range sessions {
		assert.NotNil(t, s.RevokedAt)
	}
}

func TestCreateUserRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.User.CreateUser(ctx, &request.CreateUserRequest{
		FullName: "Copy Cat",
		Email:    "DESK@boat.test",
		Password: "whatever",
		Role:     "seller",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = f.svc.User.CreateUser(ctx, &request.CreateUserRequest{
		FullName: "Lost Agent",
		Email:    "lost@boat.test",
		Password: "whatever",
		Role:     "seller",
		AgencyID: ptr(uuid.NewString()),
	})
	assert.ErrorIs(t, err, ErrAgencyNotFound)

	_, err = f.svc.User.CreateUser(ctx, &request.CreateUserRequest{
		FullName: "Captain",
		Email:    "captain@boat.test",
		Password: "whatever",
		Role:     "captain",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserProfileAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	profile, err := f.svc.User.GetProfile(ctx, f.agent.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Agency Seller", profile.FullName)
	assert.Equal(t, f.agency.ID.String(), *profile.AgencyID)

	_, err = f.svc.User.GetProfile(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrUserNotFound)

	page, err := f.svc.User.GetAllUsers(ctx, &request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.EqualValues(t, 3, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
}
