package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/BicEv/MovieRatings/internal/domain"
	"github.com/BicEv/MovieRatings/internal/store"
)

func TestRegisterUser(t *testing.T) {
	env := newTestEnv()

	user := env.registerUser(t, "alice@example.com", "alice123")
	require.NotEmpty(t, user.ID)
	require.Equal(t, domain.RoleUser, user.Role)
	require.NotEqual(t, "secret123", user.PasswordHash)

	fetched, err := env.users.GetByEmail(context.Background(), "ALICE@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, fetched.ID)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.registerUser(t, "alice@example.com", "alice123")

	_, err := env.users.Register(ctx, domain.RegisterRequest{
		Email:    "Alice@Example.com",
		UserName: "other999",
		Password: "secret123",
	})
	require.ErrorIs(t, err, store.ErrUserAlreadyExists)

	_, err = env.users.Register(ctx, domain.RegisterRequest{
		Email:    "second@example.com",
		UserName: "ALICE123",
		Password: "secret123",
	})
	require.ErrorIs(t, err, store.ErrUserAlreadyExists)
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	user := env.registerUser(t, "alice@example.com", "alice123")

	authed, err := env.users.Authenticate(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, user.ID, authed.ID)

	_, err = env.users.Authenticate(ctx, "alice@example.com", "wrongpass")
	require.ErrorIs(t, err, ErrAccessDenied)

	// Unknown emails fail the same way as bad passwords.
	_, err = env.users.Authenticate(ctx, "nobody@example.com", "secret123")
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserByIDNotFound(t *testing.T) {
	env := newTestEnv()
	_, err := env.users.GetByID(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	user := env.registerUser(t, "alice@example.com", "alice123")
	env.registerUser(t, "bob@example.com", "bobby123")

	newName := "alice456"
	updated, err := env.users.UpdateProfile(ctx, user.ID, domain.UpdateProfileRequest{UserName: &newName})
	require.NoError(t, err)
	require.Equal(t, newName, updated.UserName)
	require.Equal(t, "alice@example.com", updated.Email)

	takenEmail := "bob@example.com"
	_, err = env.users.UpdateProfile(ctx, user.ID, domain.UpdateProfileRequest{Email: &takenEmail})
	require.ErrorIs(t, err, store.ErrUserAlreadyExists)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	user := env.registerUser(t, "alice@example.com", "alice123")

	err := env.users.ChangePassword(ctx, user.ID, "wrongpass", "newsecret1")
	require.ErrorIs(t, err, ErrAccessDenied)

	require.NoError(t, env.users.ChangePassword(ctx, user.ID, "secret123", "newsecret1"))

	_, err = env.users.Authenticate(ctx, "alice@example.com", "secret123")
	require.ErrorIs(t, err, ErrAccessDenied)
	_, err = env.users.Authenticate(ctx, "alice@example.com", "newsecret1")
	require.NoError(t, err)
}

func TestDeleteUserCascadesReviews(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	user := env.registerUser(t, "alice@example.com", "alice123")
	movie := env.createMovie(t, "Brazil", "Sci-Fi", 1985)
	review := env.postReview(t, user.ID, movie.ID, 4, "")

	require.NoError(t, env.users.Delete(ctx, user.ID))

	_, err := env.users.GetByID(ctx, user.ID)
	require.ErrorIs(t, err, store.ErrUserNotFound)
	_, err = env.reviews.GetByID(ctx, review.ID)
	require.ErrorIs(t, err, store.ErrReviewNotFound)

	// The movie itself survives, back at an empty rating.
	fetched, err := env.movies.GetByID(ctx, movie.ID)
	require.NoError(t, err)
	require.Equal(t, 0.0, fetched.Rating)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	require.NoError(t, env.users.EnsureAdmin(ctx, "admin@example.com", "movieadmin", "admin_password"))
	require.NoError(t, env.users.EnsureAdmin(ctx, "admin@example.com", "movieadmin", "admin_password"))

	admin, err := env.users.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, admin.Role)

	authed, err := env.users.Authenticate(ctx, "admin@example.com", "admin_password")
	require.NoError(t, err)
	require.Equal(t, admin.ID, authed.ID)
}

func TestEnsureAdminRejectsInvalidUserName(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// Bootstrap usernames follow the same rule as registered ones.
	for _, userName := range []string{"admin", "admin_user", "averylongadminname"} {
		err := env.users.EnsureAdmin(ctx, "admin@example.com", userName, "admin_password")
		require.Error(t, err, "userName %q", userName)
	}

	_, err := env.users.GetByEmail(ctx, "admin@example.com")
	require.ErrorIs(t, err, store.ErrUserNotFound)
}
