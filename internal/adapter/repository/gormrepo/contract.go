package gormrepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pawnshop-backoffice/internal/domain/apperr"
	"pawnshop-backoffice/internal/domain/contract"
)

type ContractRepository struct{ db *gorm.DB }

func NewContractRepository(db *gorm.DB) *ContractRepository { return &ContractRepository{db: db} }

func (r *ContractRepository) Create(ctx context.Context, c *contract.Contract) error {
	if c.Version == 0 {
		c.Version = 1
	}
	return translate(r.db.WithContext(ctx).Create(c).Error, "contract")
}

// Save writes the whole row guarded by the version the caller loaded.
func (r *ContractRepository) Save(ctx context.Context, c *contract.Contract) error {
	prev := c.Version
	c.Version = prev + 1
	res := r.db.WithContext(ctx).
		Model(c).
		Where("version = ?", prev).
		Select("*").
		Omit("id", "created_at").
		Updates(c)
	if res.Error != nil {
		c.Version = prev
		return translate(res.Error, "contract")
	}
	if res.RowsAffected == 0 {
		c.Version = prev
		return apperr.Conflict("contract " + c.ContractID + " was modified concurrently")
	}
	return nil
}

func (r *ContractRepository) GetByContractID(ctx context.Context, contractID string) (*contract.Contract, error) {
	var out contract.Contract
	res := r.db.WithContext(ctx).Where("contract_id = ?", contractID).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, "contract")
	}
	return &out, nil
}

func (r *ContractRepository) GetByContractIDForUpdate(ctx context.Context, contractID string) (*contract.Contract, error) {
	var out contract.Contract
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("contract_id = ?", contractID).
		First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, "contract")
	}
	return &out, nil
}

func (r *ContractRepository) GetByQRCode(ctx context.Context, qrCode string) (*contract.Contract, error) {
	var out contract.Contract
	res := r.db.WithContext(ctx).Where("qr_code = ?", qrCode).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, "contract")
	}
	return &out, nil
}

func (r *ContractRepository) List(ctx context.Context, f contract.ListFilter) ([]contract.Contract, int64, error) {
	q := r.db.WithContext(ctx).Model(&contract.Contract{})
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if f.CustomerID != "" {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.From != nil {
		q = q.Where("contract_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("contract_date <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []contract.Contract
	q = q.Order("created_at DESC, id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ContractRepository) ListOverdue(ctx context.Context, today time.Time) ([]contract.Contract, error) {
	var out []contract.Contract
	res := r.db.WithContext(ctx).
		Where("status IN ?", contract.OpenStates()).
		Where("((due_date IS NOT NULL AND due_date < ?) OR status = ?)", today, contract.StatusOverdue).
		Order("due_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ContractRepository) MaxSequenceByQRPrefix(ctx context.Context, prefix string) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&contract.Contract{}).
		Select("COALESCE(MAX(sequence_number), 0)").
		Where("qr_code LIKE ?", prefix+"%").
		Scan(&n)
	return n, res.Error
}

func (r *ContractRepository) CountByCustomer(ctx context.Context, customerID string, statuses []contract.Status) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&contract.Contract{}).Where("customer_id = ?", customerID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	return n, q.Count(&n).Error
}

func (r *ContractRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]contract.Contract, error) {
	var out []contract.Contract
	res := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ContractRepository) ListByIDs(ctx context.Context, ids []uint64) ([]contract.Contract, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []contract.Contract
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out)
	return out, res.Error
}
