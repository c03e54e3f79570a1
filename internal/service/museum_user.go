package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"museum-backend/internal/repository"
	apperrors "museum-backend/pkg/errors"
)

// ── 馆员 / 访客共用的账号校验 ──

var (
	ErrEmailExists     = errors.New("邮箱已被注册")
	ErrInvalidEmail    = fmt.Errorf("%w: 邮箱格式无效", apperrors.ErrInvalidArgument)
	ErrNameRequired    = fmt.Errorf("%w: 姓名不能为空", apperrors.ErrInvalidArgument)
	ErrWeakPassword    = fmt.Errorf("%w: 密码至少 8 位且须同时包含字母和数字", apperrors.ErrInvalidArgument)
	ErrPasswordTooLong = fmt.Errorf("%w: 密码不能超过 72 字节", apperrors.ErrInvalidArgument)
)

// isBusinessError 业务错误无需记录 Error 日志
func isBusinessError(err error) bool {
	return errors.Is(err, apperrors.ErrInvalidArgument) ||
		errors.Is(err, ErrTimePeriodAlreadyInSchedule) ||
		errors.Is(err, ErrScheduleNotFound) ||
		errors.Is(err, ErrScheduleInUse) ||
		errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrVisitorNotFound) ||
		errors.Is(err, ErrEmailExists)
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	return name, nil
}

// validatePassword 至少 8 位，同时包含字母和数字；bcrypt 只处理前 72 字节
func validatePassword(password string) error {
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	if len(password) < 8 {
		return ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ensureEmailAvailable 邮箱在馆员与访客之间全局唯一
func ensureEmailAvailable(ctx context.Context, repo *repository.Repository, email string) error {
	if _, err := repo.Employee.GetByEmail(ctx, email); err == nil {
		return ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := repo.Visitor.GetByEmail(ctx, email); err == nil {
		return ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
