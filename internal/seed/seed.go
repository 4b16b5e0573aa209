package seed

import (
	"context"
	"fmt"

	"github.com/blues/crowdhub/internal/config"
	"github.com/blues/crowdhub/internal/logger"
	"github.com/blues/crowdhub/internal/logic"
	"gorm.io/gorm"
)

// Result 本次写入的记录数
type Result struct {
	Categories  int
	UserCreated bool
}

// Run 写入初始分类和管理员账号，已存在的数据跳过
func Run(ctx context.Context, db *gorm.DB, cfg config.SeedConfig) (Result, error) {
	var result Result

	created, err := logic.NewCategoryLogic(db).EnsureCategories(ctx, cfg.Categories)
	if err != nil {
		return result, fmt.Errorf("写入分类失败: %w", err)
	}
	result.Categories = created
	logger.Info("Seeded %d new categories (%d configured)", created, len(cfg.Categories))

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logger.Info("No admin account configured. Skipping user seeding.")
		return result, nil
	}

	user, userCreated, err := logic.NewUserLogic(db).EnsureUser(ctx, "Admin", cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return result, fmt.Errorf("写入管理员失败: %w", err)
	}
	result.UserCreated = userCreated
	if userCreated {
		logger.Info("Admin user %d seeded successfully", user.Id)
	} else {
		logger.Info("Admin user %s already exists. Skipping seeding.", user.Email)
	}

	return result, nil
}
