package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUserRepository runs the contract every UserRepository implementation
// must satisfy.
func TestUserRepository(t *testing.T, repo UserRepository) {
	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	users := []*User{
		{
			Name:         "Pizza",
			Email:        "pizza@bockdocs.com",
			PasswordHash: "$2a$10$pizza",
		},
		{
			Name:              "Yolo",
			Email:             "yolo@bockdocs.com",
			GoogleID:          "google-5678",
			ResetToken:        "reset-abcd",
			ResetTokenExpires: &expires,
		},
	}

	for _, user := range users {
		err := repo.Upsert(user)
		require.NoError(t, err, "insert %s should not fail", user.Name)
		require.NotEqual(t, 0, user.ID, "id must be set by insert")
		require.False(t, user.CreatedAt.IsZero(), "created at must be set by insert")
	}
	require.NotEqual(t, users[0].ID, users[1].ID, "ids must be different")

	// Lookups that should hit
	for _, user := range users {
		retrieved, err := repo.Get(user.ID)
		require.NoError(t, err)
		assertUser(t, *user, retrieved, "get")
	}

	retrieved, err := repo.GetByEmail("pizza@bockdocs.com")
	require.NoError(t, err)
	assertUser(t, *users[0], retrieved, "get by email")

	retrieved, err = repo.GetByGoogleID("google-5678")
	require.NoError(t, err)
	assertUser(t, *users[1], retrieved, "get by google id")

	retrieved, err = repo.GetByResetToken("reset-abcd")
	require.NoError(t, err)
	assertUser(t, *users[1], retrieved, "get by reset token")

	// Lookups that should miss return the zero user
	retrieved, err = repo.Get(404)
	require.NoError(t, err)
	assert.Equal(t, 0, retrieved.ID, "unknown id should return the zero user")

	retrieved, err = repo.GetByEmail("nobody@bockdocs.com")
	require.NoError(t, err)
	assert.Equal(t, 0, retrieved.ID, "unknown email should return the zero user")

	retrieved, err = repo.GetByGoogleID("")
	require.NoError(t, err)
	assert.Equal(t, 0, retrieved.ID, "empty google id should never match")

	retrieved, err = repo.GetByResetToken("")
	require.NoError(t, err)
	assert.Equal(t, 0, retrieved.ID, "empty reset token should never match")

	// Update keeps the id and clears fields set to zero values
	users[1].ResetToken = ""
	users[1].ResetTokenExpires = nil
	users[1].PasswordHash = "$2a$10$yolo"
	require.NoError(t, repo.Upsert(users[1]))

	retrieved, err = repo.Get(users[1].ID)
	require.NoError(t, err)
	assert.Empty(t, retrieved.ResetToken, "reset token should be cleared")
	assert.Nil(t, retrieved.ResetTokenExpires)
	assert.Equal(t, "$2a$10$yolo", retrieved.PasswordHash)

	// Delete
	require.NoError(t, repo.Delete(users[0].ID))
	retrieved, err = repo.Get(users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, retrieved.ID, "deleted user should not be found")
}

func assertUser(t *testing.T, expected, got User, name string) {
	assert.Equal(t, expected.ID, got.ID, "%s - id", name)
	assert.Equal(t, expected.Email, got.Email, "%s - email", name)
	assert.Equal(t, expected.Name, got.Name, "%s - name", name)
	assert.Equal(t, expected.GoogleID, got.GoogleID, "%s - google id", name)
	assert.Equal(t, expected.PasswordHash, got.PasswordHash, "%s - password hash", name)
	assert.Equal(t, expected.ResetToken, got.ResetToken, "%s - reset token", name)
}
