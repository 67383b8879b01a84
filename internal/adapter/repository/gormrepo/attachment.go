package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"pawnshop-backoffice/internal/domain/attachment"
)

type ImageRepository struct{ db *gorm.DB }

func NewImageRepository(db *gorm.DB) *ImageRepository { return &ImageRepository{db: db} }

func (r *ImageRepository) Create(ctx context.Context, img *attachment.Image) error {
	return translate(r.db.WithContext(ctx).Create(img).Error, "image")
}

func (r *ImageRepository) ListByContract(ctx context.Context, contractID uint64) ([]attachment.Image, error) {
	var out []attachment.Image
	res := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ImageRepository) DeleteByPath(ctx context.Context, path string) error {
	return r.db.WithContext(ctx).Where("image_path = ?", path).Delete(&attachment.Image{}).Error
}
