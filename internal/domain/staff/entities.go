package staff

import "time"

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleStaff      Role = "STAFF"
)

// Table: staff
type Staff struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	StaffID   string    `gorm:"column:staff_id;type:char(32);not null;uniqueIndex:ux_staff_staff_id" json:"staff_id"`
	Code      string    `gorm:"column:staff_code;size:20;not null;uniqueIndex:ux_staff_code" json:"staff_code"`
	FullName  string    `gorm:"column:full_name;size:255;not null" json:"full_name"`
	Role      Role      `gorm:"column:role;size:16;not null" json:"role"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Staff) TableName() string { return "staff" }
