package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/sofregit/backend/internal/model"
)

func TestSetupSQLite(t *testing.T) {
	db := SetupSQLite(t)

	user := &model.User{Email: "cook@example.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(user).Error)
	assert.NotEmpty(t, user.ID)

	var count int64
	require.NoError(t, db.Model(&model.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}
