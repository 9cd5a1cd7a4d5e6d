package mysql

import (
	"context"
	"errors"

	platformDomain "credentia/internal/domain/platform"

	"gorm.io/gorm"
)

type PlatformRepository struct{ db *gorm.DB }

func NewPlatformRepository(db *gorm.DB) *PlatformRepository { return &PlatformRepository{db: db} }

func (r *PlatformRepository) Create(ctx context.Context, p *platformDomain.Platform) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PlatformRepository) Get(ctx context.Context) (*platformDomain.Platform, error) {
	var out platformDomain.Platform
	res := r.db.WithContext(ctx).Order("id ASC").First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, platformDomain.ErrNotInitialized
	}
	return &out, res.Error
}
