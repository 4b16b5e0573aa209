package seed

import (
	"context"
	"testing"

	"github.com/blues/crowdhub/internal/config"
	"github.com/blues/crowdhub/internal/database/databasetest"
	"github.com/blues/crowdhub/internal/logic"
	"github.com/blues/crowdhub/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunIsIdempotent(t *testing.T) {
	db := databasetest.New(t)
	ctx := context.Background()
	cfg := config.SeedConfig{
		Categories:    []string{"Art", "Technology"},
		AdminEmail:    "admin@example.com",
		AdminPassword: "secret-password",
	}

	first, err := Run(ctx, db, cfg)
	require.NoError(t, err)
	assert.Equal(t, Result{Categories: 2, UserCreated: true}, first)

	second, err := Run(ctx, db, cfg)
	require.NoError(t, err)
	assert.Equal(t, Result{}, second)

	var categories int64
	require.NoError(t, db.Model(&model.CategoryModel{}).Count(&categories).Error)
	assert.EqualValues(t, 2, categories)

	user, err := logic.NewUserLogic(db).Authenticate(ctx, "admin@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, "Admin", user.Name)
}

func TestRunWithoutAdmin(t *testing.T) {
	db := databasetest.New(t)

	result, err := Run(context.Background(), db, config.SeedConfig{Categories: []string{"Health"}})
	require.NoError(t, err)
	assert.Equal(t, Result{Categories: 1}, result)

	var users int64
	require.NoError(t, db.Model(&model.UserModel{}).Count(&users).Error)
	assert.Zero(t, users)
}
