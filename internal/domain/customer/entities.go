package customer

import "time"

type IDCardType string

const (
	IDCardCMND     IDCardType = "CMND"
	IDCardCCCD     IDCardType = "CCCD"
	IDCardPassport IDCardType = "PASSPORT"
	IDCardOther    IDCardType = "OTHER"
)

func ValidIDCardType(t IDCardType) bool {
	switch t {
	case IDCardCMND, IDCardCCCD, IDCardPassport, IDCardOther:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Table: customers. Removal only clears IsActive; contracts keep pointing
// at the row.
type Customer struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	CustomerID string `gorm:"column:customer_id;type:char(32);not null;uniqueIndex:ux_customers_customer_id" json:"customer_id"`

	FullName string  `gorm:"column:full_name;size:255;not null;index:idx_customers_full_name" json:"full_name"`
	Phone    *string `gorm:"column:phone;size:20" json:"phone,omitempty"`
	Email    *string `gorm:"column:email;size:255" json:"email,omitempty"`
	Address  *string `gorm:"column:address;type:text" json:"address,omitempty"`

	// Unique among active customers only; enforced by the use case.
	IDCardType        IDCardType `gorm:"column:id_card_type;size:16;not null" json:"id_card_type"`
	IDCardNumber      string     `gorm:"column:id_card_number;size:32;not null;index:idx_customers_id_card" json:"id_card_number"`
	IDCardIssuedDate  *time.Time `gorm:"column:id_card_issued_date;type:date" json:"id_card_issued_date,omitempty"`
	IDCardIssuedPlace *string    `gorm:"column:id_card_issued_place;size:255" json:"id_card_issued_place,omitempty"`
	DateOfBirth       *time.Time `gorm:"column:date_of_birth;type:date" json:"date_of_birth,omitempty"`
	Gender            *Gender    `gorm:"column:gender;size:8" json:"gender,omitempty"`

	// Blob store paths
	IDCardFrontImage *string `gorm:"column:id_card_front_image;size:512" json:"id_card_front_image,omitempty"`
	IDCardBackImage  *string `gorm:"column:id_card_back_image;size:512" json:"id_card_back_image,omitempty"`
	PortraitImage    *string `gorm:"column:portrait_image;size:512" json:"portrait_image,omitempty"`

	Notes     *string   `gorm:"column:notes;type:text" json:"notes,omitempty"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedBy string    `gorm:"column:created_by;type:char(32);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }
