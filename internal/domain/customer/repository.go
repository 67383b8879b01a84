package customer

import "context"

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	Save(ctx context.Context, c *Customer) error
	// Returns inactive rows too; callers decide what inactive means.
	GetByCustomerID(ctx context.Context, customerID string) (*Customer, error)
	// An active customer other than exceptCustomerID holding the number,
	// or a NotFound error.
	FindActiveByIDCard(ctx context.Context, idCardNumber, exceptCustomerID string) (*Customer, error)
	// Active customers whose name, phone or id card number contains query,
	// ordered by full name.
	Search(ctx context.Context, query string, limit int) ([]Customer, error)
	ListByCustomerIDs(ctx context.Context, customerIDs []string) ([]Customer, error)
}
