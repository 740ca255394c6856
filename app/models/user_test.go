package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3creto")
	require.NoError(t, err)
	assert.NotEqual(t, "s3creto", hash)

	assert.True(t, CheckPasswordHash("s3creto", hash))
	assert.False(t, CheckPasswordHash("otro", hash))
}

func TestCheckPasswordOAuthOnlyUser(t *testing.T) {
	u := &User{}
	assert.False(t, u.CheckPassword(""))
	assert.False(t, u.CheckPassword("anything"))
}

func TestUserRoles(t *testing.T) {
	u := &User{Role: ROLE_USER}
	assert.False(t, u.IsEditor())
	assert.False(t, u.IsAdmin())

	u.Role = ROLE_EDITOR
	assert.True(t, u.IsEditor())
	assert.False(t, u.IsAdmin())

	u.Role = ROLE_ADMIN
	assert.True(t, u.IsEditor())
	assert.True(t, u.IsAdmin())
}
