package gormrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"pawnshop-backoffice/internal/domain/payment"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	return translate(r.db.WithContext(ctx).Create(p).Error, "payment")
}

func (r *PaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*payment.Payment, error) {
	var out payment.Payment
	res := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, "payment")
	}
	return &out, nil
}

func (r *PaymentRepository) ListByContract(ctx context.Context, contractID uint64) ([]payment.Payment, error) {
	var out []payment.Payment
	res := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("payment_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]payment.Payment, error) {
	var out []payment.Payment
	res := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

// Delete soft-deletes the row; default scopes hide it from every read.
func (r *PaymentRepository) Delete(ctx context.Context, p *payment.Payment, deletedBy string) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(p).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	res := db.Delete(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "payment")
	}
	return nil
}
