package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	user, err := CreateUser(1, "Ana Souza", "ana@orcahub.test", "correct horse battery")
	require.NoError(t, err)

	assert.Equal(t, uint(1), user.TenantID)
	assert.Equal(t, ROLE_USER, user.Role)
	assert.Equal(t, STATUS_ACTIVE, user.Status)
	assert.True(t, user.IsActive())
	assert.NotEqual(t, "correct horse battery", user.Password)

	assert.True(t, user.CheckPassword("correct horse battery"))
	assert.False(t, user.CheckPassword("wrong password"))

	require.NoError(t, user.Validate())
}

func TestUserIsActive(t *testing.T) {
	user := &User{Status: STATUS_INACTIVE}
	assert.False(t, user.IsActive())
}
