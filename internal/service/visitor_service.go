package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"museum-backend/internal/dto"
	"museum-backend/internal/model"
	"museum-backend/internal/repository"
)

// ── 访客模块业务错误 ──

var (
	ErrVisitorNotFound = errors.New("访客不存在")
)

// VisitorService 访客业务接口
type VisitorService interface {
	Register(ctx context.Context, req *dto.CreateMuseumUserRequest) (*model.Visitor, error)
	GetByID(ctx context.Context, id string) (*model.Visitor, error)
	List(ctx context.Context, req *dto.PaginationRequest) ([]model.Visitor, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateMuseumUserRequest) (*model.Visitor, error)
	Delete(ctx context.Context, id string) error
}

type visitorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewVisitorService 创建 VisitorService 实例
func NewVisitorService(repo *repository.Repository, logger *zap.Logger) VisitorService {
	return &visitorService{repo: repo, logger: logger}
}

func (s *visitorService) Register(ctx context.Context, req *dto.CreateMuseumUserRequest) (*model.Visitor, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	visitor := &model.Visitor{MuseumUser: model.MuseumUser{
		Email:    email,
		Name:     name,
		Password: hash,
	}}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := ensureEmailAvailable(ctx, tx, email); err != nil {
			return err
		}
		return tx.Visitor.Create(ctx, visitor)
	})
	if err != nil {
		if !isBusinessError(err) {
			s.logger.Error("注册访客失败", zap.String("email", email), zap.Error(err))
		}
		return nil, err
	}
	return visitor, nil
}

func (s *visitorService) GetByID(ctx context.Context, id string) (*model.Visitor, error) {
	if !isValidID(id) {
		return nil, ErrVisitorNotFound
	}
	visitor, err := s.repo.Visitor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVisitorNotFound
		}
		s.logger.Error("查询访客失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return visitor, nil
}

func (s *visitorService) List(ctx context.Context, req *dto.PaginationRequest) ([]model.Visitor, int64, error) {
	visitors, total, err := s.repo.Visitor.List(ctx, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出访客失败", zap.Error(err))
		return nil, 0, err
	}
	return visitors, total, nil
}

func (s *visitorService) Update(ctx context.Context, id string, req *dto.UpdateMuseumUserRequest) (*model.Visitor, error) {
	visitor, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name, err := validateName(*req.Name)
		if err != nil {
			return nil, err
		}
		visitor.Name = name
	}
	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return nil, err
		}
		hash, err := hashPassword(*req.Password)
		if err != nil {
			s.logger.Error("密码哈希失败", zap.Error(err))
			return nil, err
		}
		visitor.Password = hash
	}

	if err := s.repo.Visitor.Update(ctx, visitor); err != nil {
		s.logger.Error("更新访客失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return visitor, nil
}

func (s *visitorService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Visitor.Delete(ctx, id); err != nil {
		s.logger.Error("删除访客失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
