package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blues/crowdhub/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserLogic 用户业务逻辑
type UserLogic struct {
	db *gorm.DB
}

// NewUserLogic 创建用户业务逻辑
func NewUserLogic(db *gorm.DB) *UserLogic {
	return &UserLogic{db: db}
}

// Authenticate 邮箱密码登录
func (l *UserLogic) Authenticate(ctx context.Context, email, password string) (*model.UserModel, error) {
	var user model.UserModel
	err := l.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetUser 按 id 查询用户
func (l *UserLogic) GetUser(ctx context.Context, id int64) (*model.UserModel, error) {
	var user model.UserModel
	if err := l.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// EnsureUser 邮箱不存在时创建用户
func (l *UserLogic) EnsureUser(ctx context.Context, name, email, password string) (*model.UserModel, bool, error) {
	email = normalizeEmail(email)

	var user model.UserModel
	err := l.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("查询用户失败: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("生成密码哈希失败: %w", err)
	}

	user = model.UserModel{Name: name, Email: email, PasswordHash: string(hash)}
	if err := l.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, false, fmt.Errorf("创建用户失败: %w", err)
	}
	return &user, true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
