package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pawnshop-backoffice/internal/domain/apperr"
	"pawnshop-backoffice/internal/domain/audit"
	"pawnshop-backoffice/internal/domain/contract"
	"pawnshop-backoffice/internal/domain/customer"
	"pawnshop-backoffice/internal/usecase/shared"
	"pawnshop-backoffice/pkg/accounting"
	"pawnshop-backoffice/pkg/id"
)

// A customer holding a contract in one of these states cannot be removed.
var blockingStates = []contract.Status{
	contract.StatusDraft, contract.StatusActive, contract.StatusExtended, contract.StatusOverdue,
}

type Usecase struct {
	customers customer.Repository
	contracts contract.Repository
	activity  *shared.Activity
	clock     shared.Clock
}

func NewUsecase(customers customer.Repository, contracts contract.Repository, audits audit.Repository, clock shared.Clock) *Usecase {
	return &Usecase{
		customers: customers,
		contracts: contracts,
		activity:  shared.NewActivity(audits),
		clock:     clock,
	}
}

// Create registers a customer. The id card number must not belong to another
// active customer.
func (u *Usecase) Create(ctx context.Context, staffID string, in CreateInput) (*customer.Customer, error) {
	if err := shared.RequireStaff(staffID); err != nil {
		return nil, err
	}

	c := &customer.Customer{
		CustomerID:        id.NewID32(),
		FullName:          strings.TrimSpace(in.FullName),
		Phone:             optional(in.Phone),
		Email:             optional(in.Email),
		Address:           optional(in.Address),
		IDCardType:        customer.IDCardType(strings.ToUpper(strings.TrimSpace(string(in.IDCardType)))),
		IDCardNumber:      strings.TrimSpace(in.IDCardNumber),
		IDCardIssuedDate:  civil(in.IDCardIssuedDate),
		IDCardIssuedPlace: optional(in.IDCardIssuedPlace),
		DateOfBirth:       civil(in.DateOfBirth),
		IDCardFrontImage:  optional(in.IDCardFrontImage),
		IDCardBackImage:   optional(in.IDCardBackImage),
		PortraitImage:     optional(in.PortraitImage),
		Notes:             optional(in.Notes),
		IsActive:          true,
		CreatedBy:         staffID,
	}
	if g := strings.ToUpper(strings.TrimSpace(string(in.Gender))); g != "" {
		gender := customer.Gender(g)
		c.Gender = &gender
	}
	if err := u.check(c); err != nil {
		return nil, err
	}
	if err := u.ensureUniqueIDCard(ctx, c.IDCardNumber, ""); err != nil {
		return nil, err
	}

	if err := u.customers.Create(ctx, c); err != nil {
		return nil, shared.Fail("create customer", err)
	}
	u.activity.Log(ctx, staffID, nil, audit.ActionCustomerCreated, fmt.Sprintf("created customer %s", c.CustomerID))
	return c, nil
}

func (u *Usecase) Update(ctx context.Context, staffID, customerID string, in UpdateInput) (*customer.Customer, error) {
	if err := shared.RequireStaff(staffID); err != nil {
		return nil, err
	}
	c, err := u.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	prevIDCard := c.IDCardNumber

	if in.FullName != nil {
		c.FullName = strings.TrimSpace(*in.FullName)
	}
	setOptional(&c.Phone, in.Phone)
	setOptional(&c.Email, in.Email)
	setOptional(&c.Address, in.Address)
	if in.IDCardType != nil {
		c.IDCardType = customer.IDCardType(strings.ToUpper(strings.TrimSpace(string(*in.IDCardType))))
	}
	if in.IDCardNumber != nil {
		c.IDCardNumber = strings.TrimSpace(*in.IDCardNumber)
	}
	if in.IDCardIssuedDate != nil {
		c.IDCardIssuedDate = civil(in.IDCardIssuedDate)
	}
	setOptional(&c.IDCardIssuedPlace, in.IDCardIssuedPlace)
	if in.DateOfBirth != nil {
		c.DateOfBirth = civil(in.DateOfBirth)
	}
	if in.Gender != nil {
		c.Gender = nil
		if g := strings.ToUpper(strings.TrimSpace(string(*in.Gender))); g != "" {
			gender := customer.Gender(g)
			c.Gender = &gender
		}
	}
	setOptional(&c.IDCardFrontImage, in.IDCardFrontImage)
	setOptional(&c.IDCardBackImage, in.IDCardBackImage)
	setOptional(&c.PortraitImage, in.PortraitImage)
	setOptional(&c.Notes, in.Notes)

	if err := u.check(c); err != nil {
		return nil, err
	}
	if c.IDCardNumber != prevIDCard {
		if err := u.ensureUniqueIDCard(ctx, c.IDCardNumber, c.CustomerID); err != nil {
			return nil, err
		}
	}

	if err := u.customers.Save(ctx, c); err != nil {
		return nil, shared.Fail("update customer", err)
	}
	u.activity.Log(ctx, staffID, nil, audit.ActionCustomerUpdated, fmt.Sprintf("updated customer %s", c.CustomerID))
	return c, nil
}

// Get returns an active customer; a removed one is not found.
func (u *Usecase) Get(ctx context.Context, customerID string) (*customer.Customer, error) {
	c, err := u.customers.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, shared.Fail("get customer", err)
	}
	if !c.IsActive {
		return nil, apperr.NotFound("customer")
	}
	return c, nil
}

func (u *Usecase) Search(ctx context.Context, in SearchInput) ([]customer.Customer, error) {
	limit := in.Limit
	if limit < 1 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	rows, err := u.customers.Search(ctx, strings.TrimSpace(in.Query), limit)
	if err != nil {
		return nil, shared.Fail("search customers", err)
	}
	if rows == nil {
		rows = []customer.Customer{}
	}
	return rows, nil
}

// Delete deactivates the customer. It is refused while any of their
// contracts is still pending or open.
func (u *Usecase) Delete(ctx context.Context, staffID, customerID string) error {
	if err := shared.RequireStaff(staffID); err != nil {
		return err
	}
	c, err := u.Get(ctx, customerID)
	if err != nil {
		return err
	}
	n, err := u.contracts.CountByCustomer(ctx, c.CustomerID, blockingStates)
	if err != nil {
		return shared.Fail("count customer contracts", err)
	}
	if n > 0 {
		return apperr.Conflict(fmt.Sprintf("customer has %d open contract(s)", n))
	}

	c.IsActive = false
	if err := u.customers.Save(ctx, c); err != nil {
		return shared.Fail("delete customer", err)
	}
	u.activity.Log(ctx, staffID, nil, audit.ActionCustomerDeleted, fmt.Sprintf("deleted customer %s", c.CustomerID))
	return nil
}

func (u *Usecase) check(c *customer.Customer) error {
	if c.FullName == "" {
		return apperr.Invalid("full_name", "is required")
	}
	if !customer.ValidIDCardType(c.IDCardType) {
		return apperr.Invalid("id_card_type", "is not supported")
	}
	if c.IDCardNumber == "" {
		return apperr.Invalid("id_card_number", "is required")
	}
	if c.Gender != nil && !customer.ValidGender(*c.Gender) {
		return apperr.Invalid("gender", "is not supported")
	}
	today := u.clock.Today()
	if c.DateOfBirth != nil && c.DateOfBirth.After(today) {
		return apperr.Invalid("date_of_birth", "must not be in the future")
	}
	if c.IDCardIssuedDate != nil && c.IDCardIssuedDate.After(today) {
		return apperr.Invalid("id_card_issued_date", "must not be in the future")
	}
	return nil
}

func (u *Usecase) ensureUniqueIDCard(ctx context.Context, number, exceptCustomerID string) error {
	_, err := u.customers.FindActiveByIDCard(ctx, number, exceptCustomerID)
	switch {
	case err == nil:
		return apperr.Conflict("id card number is already registered to another customer")
	case errors.Is(err, apperr.ErrNotFound):
		return nil
	}
	return shared.Fail("check id card number", err)
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

func setOptional(dst **string, v *string) {
	if v != nil {
		*dst = optional(*v)
	}
}

func civil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := accounting.CivilDate(*t)
	return &d
}
