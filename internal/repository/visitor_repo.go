package repository

import (
	"context"

	"gorm.io/gorm"

	"museum-backend/internal/model"
)

// VisitorRepository 访客数据访问接口
type VisitorRepository interface {
	Create(ctx context.Context, visitor *model.Visitor) error
	GetByID(ctx context.Context, id string) (*model.Visitor, error)
	GetByEmail(ctx context.Context, email string) (*model.Visitor, error)
	List(ctx context.Context, offset, limit int) ([]model.Visitor, int64, error)
	Update(ctx context.Context, visitor *model.Visitor) error
	Delete(ctx context.Context, id string) error
}

type visitorRepo struct {
	db *gorm.DB
}

// NewVisitorRepo 创建 VisitorRepository 实例
func NewVisitorRepo(db *gorm.DB) VisitorRepository {
	return &visitorRepo{db: db}
}

func (r *visitorRepo) Create(ctx context.Context, visitor *model.Visitor) error {
	return r.db.WithContext(ctx).Create(visitor).Error
}

func (r *visitorRepo) GetByID(ctx context.Context, id string) (*model.Visitor, error) {
	var visitor model.Visitor
	if err := r.db.WithContext(ctx).Where("museum_user_id = ?", id).First(&visitor).Error; err != nil {
		return nil, err
	}
	return &visitor, nil
}

func (r *visitorRepo) GetByEmail(ctx context.Context, email string) (*model.Visitor, error) {
	var visitor model.Visitor
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&visitor).Error; err != nil {
		return nil, err
	}
	return &visitor, nil
}

func (r *visitorRepo) List(ctx context.Context, offset, limit int) ([]model.Visitor, int64, error) {
	var visitors []model.Visitor
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Visitor{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Offset(offset).Limit(limit).Order("created_at DESC").Find(&visitors).Error; err != nil {
		return nil, 0, err
	}
	return visitors, total, nil
}

func (r *visitorRepo) Update(ctx context.Context, visitor *model.Visitor) error {
	return r.db.WithContext(ctx).Save(visitor).Error
}

func (r *visitorRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("museum_user_id = ?", id).
		Delete(&model.Visitor{}).Error
}
