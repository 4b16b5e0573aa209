package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/blues/crowdhub/internal/model"
	"gorm.io/gorm"
)

// CategoryLogic 分类业务逻辑
type CategoryLogic struct {
	db *gorm.DB
}

// NewCategoryLogic 创建分类业务逻辑
func NewCategoryLogic(db *gorm.DB) *CategoryLogic {
	return &CategoryLogic{db: db}
}

// ListCategories 按名称排序的全部分类
func (l *CategoryLogic) ListCategories(ctx context.Context) ([]model.CategoryModel, error) {
	var categories []model.CategoryModel
	if err := l.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("获取分类列表失败: %w", err)
	}
	return categories, nil
}

// Exists 分类是否存在
func (l *CategoryLogic) Exists(ctx context.Context, id int64) (bool, error) {
	return categoryExists(l.db.WithContext(ctx), id)
}

// EnsureCategories 补齐缺失的分类，返回新建数量
func (l *CategoryLogic) EnsureCategories(ctx context.Context, names []string) (int, error) {
	created := 0
	for _, name := range names {
		var existing model.CategoryModel
		err := l.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, fmt.Errorf("查询分类 %s 失败: %w", name, err)
		}

		if err := l.db.WithContext(ctx).Create(&model.CategoryModel{Name: name}).Error; err != nil {
			return created, fmt.Errorf("创建分类 %s 失败: %w", name, err)
		}
		created++
	}
	return created, nil
}

func categoryExists(db *gorm.DB, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	var count int64
	if err := db.Model(&model.CategoryModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
