package scheduler

import (
	"testing"

	"github.com/blues/crowdhub/internal/config"
	"github.com/blues/crowdhub/internal/database/databasetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckJob(t *testing.T) {
	db := databasetest.New(t)
	job := NewHealthCheckJob(db, &config.Config{Scheduler: config.SchedulerConfig{HealthInterval: 30}})

	assert.Equal(t, "db_health_check", job.GetName())
	assert.False(t, job.checked, "no check has run yet")

	job.Execute()
	assert.True(t, job.checked)
	assert.True(t, job.healthy)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	job.Execute()
	assert.False(t, job.healthy)
}

func TestManagerRegistersHealthCheck(t *testing.T) {
	db := databasetest.New(t)

	m, err := Start(db, &config.Config{Scheduler: config.SchedulerConfig{HealthInterval: 60}})
	require.NoError(t, err)
	defer m.Stop()

	assert.Equal(t, []string{"db_health_check"}, m.Jobs())
}

func TestManagerHealthCheckDisabled(t *testing.T) {
	db := databasetest.New(t)

	m, err := Start(db, &config.Config{})
	require.NoError(t, err)
	defer m.Stop()

	assert.Empty(t, m.Jobs())
}
