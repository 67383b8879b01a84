package gormrepo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"pawnshop-backoffice/internal/domain/customer"
)

type CustomerRepository struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) *CustomerRepository { return &CustomerRepository{db: db} }

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, "customer")
}

func (r *CustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	return translate(r.db.WithContext(ctx).Save(c).Error, "customer")
}

func (r *CustomerRepository) GetByCustomerID(ctx context.Context, customerID string) (*customer.Customer, error) {
	var out customer.Customer
	res := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&out)
	if res.Error != nil {
		return nil, translate(res.Error, "customer")
	}
	return &out, nil
}

func (r *CustomerRepository) FindActiveByIDCard(ctx context.Context, idCardNumber, exceptCustomerID string) (*customer.Customer, error) {
	var out customer.Customer
	q := r.db.WithContext(ctx).Where("id_card_number = ? AND is_active = ?", idCardNumber, true)
	if exceptCustomerID != "" {
		q = q.Where("customer_id <> ?", exceptCustomerID)
	}
	if err := q.Order("id ASC").First(&out).Error; err != nil {
		return nil, translate(err, "customer")
	}
	return &out, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Search matches case-insensitively on every driver; LIKE wildcards in the
// query are taken literally.
func (r *CustomerRepository) Search(ctx context.Context, query string, limit int) ([]customer.Customer, error) {
	var out []customer.Customer
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if query = strings.TrimSpace(query); query != "" {
		pat := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
		q = q.Where("(LOWER(full_name) LIKE ? ESCAPE '!' OR LOWER(phone) LIKE ? ESCAPE '!' OR LOWER(id_card_number) LIKE ? ESCAPE '!')",
			pat, pat, pat)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	res := q.Order("full_name ASC, id ASC").Find(&out)
	return out, res.Error
}

func (r *CustomerRepository) ListByCustomerIDs(ctx context.Context, customerIDs []string) ([]customer.Customer, error) {
	if len(customerIDs) == 0 {
		return nil, nil
	}
	var out []customer.Customer
	res := r.db.WithContext(ctx).Where("customer_id IN ?", customerIDs).Find(&out)
	return out, res.Error
}
