package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/blues/crowdhub/internal/config"
	"github.com/blues/crowdhub/internal/database"
	"github.com/blues/crowdhub/internal/logger"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

const healthCheckTimeout = 5 * time.Second

// HealthCheckJob 定期检查数据库连通性，状态变化时记录日志
type HealthCheckJob struct {
	db     *gorm.DB
	config *config.Config

	mu      sync.Mutex
	healthy bool
	checked bool
}

// NewHealthCheckJob 创建数据库健康检查任务
func NewHealthCheckJob(db *gorm.DB, cfg *config.Config) *HealthCheckJob {
	return &HealthCheckJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *HealthCheckJob) GetName() string {
	return "db_health_check"
}

// GetSchedule 获取调度配置
func (j *HealthCheckJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.HealthInterval) * time.Second)
}

// Execute 执行任务
func (j *HealthCheckJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	err := database.Ping(ctx, j.db)

	j.mu.Lock()
	defer j.mu.Unlock()

	healthy := err == nil
	switch {
	case !healthy:
		logger.Error("Database health check failed: %v", err)
	case !j.checked || !j.healthy:
		logger.Info("Database is reachable")
	default:
		logger.Debug("Database health check passed")
	}
	j.healthy = healthy
	j.checked = true
}
