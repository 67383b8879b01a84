package customer

import (
	"time"

	"pawnshop-backoffice/internal/domain/customer"
)

const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

type CreateInput struct {
	FullName          string
	Phone             string
	Email             string
	Address           string
	IDCardType        customer.IDCardType
	IDCardNumber      string
	IDCardIssuedDate  *time.Time
	IDCardIssuedPlace string
	DateOfBirth       *time.Time
	Gender            customer.Gender
	IDCardFrontImage  string
	IDCardBackImage   string
	PortraitImage     string
	Notes             string
}

// UpdateInput changes only the non-nil fields. An empty string clears an
// optional text field; dates can be replaced but not cleared.
type UpdateInput struct {
	FullName          *string
	Phone             *string
	Email             *string
	Address           *string
	IDCardType        *customer.IDCardType
	IDCardNumber      *string
	IDCardIssuedDate  *time.Time
	IDCardIssuedPlace *string
	DateOfBirth       *time.Time
	Gender            *customer.Gender
	IDCardFrontImage  *string
	IDCardBackImage   *string
	PortraitImage     *string
	Notes             *string
}

type SearchInput struct {
	Query string
	Limit int
}
