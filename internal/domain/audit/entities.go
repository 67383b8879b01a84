package audit

import "time"

// Activity codes written to activity_logs.
const (
	ActionContractCreated    = "CONTRACT_CREATED"
	ActionContractActivated  = "CONTRACT_ACTIVATED"
	ActionAssetReceived      = "ASSET_RECEIVED"
	ActionContractExtended   = "CONTRACT_EXTENDED"
	ActionContractRedeemed   = "CONTRACT_REDEEMED"
	ActionContractLiquidated = "CONTRACT_LIQUIDATED"
	ActionContractCancelled  = "CONTRACT_CANCELLED"
	ActionStatusChanged      = "STATUS_CHANGED"
	ActionPaymentReceived    = "PAYMENT_RECEIVED"
	ActionPaymentDeleted     = "PAYMENT_DELETED"
	ActionInspectionDone     = "INSPECTION_DONE"
	ActionPhotoUploaded      = "PHOTO_UPLOADED"
	ActionCustomerCreated    = "CUSTOMER_CREATED"
	ActionCustomerUpdated    = "CUSTOMER_UPDATED"
	ActionCustomerDeleted    = "CUSTOMER_DELETED"
)

// Table: contract_status_history. Append-only.
type StatusHistory struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ContractID uint64    `gorm:"column:contract_id;not null;index:idx_status_history_contract" json:"-"`
	OldStatus  *string   `gorm:"column:old_status;size:16" json:"old_status"`
	NewStatus  string    `gorm:"column:new_status;size:16;not null" json:"new_status"`
	ChangedBy  string    `gorm:"column:changed_by;type:char(32);not null" json:"changed_by"`
	Reason     string    `gorm:"column:reason;type:text" json:"reason,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (StatusHistory) TableName() string { return "contract_status_history" }

// Table: activity_logs. Append-only, written best-effort.
type ActivityLog struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	StaffID     string    `gorm:"column:staff_id;type:char(32);not null;index:idx_activity_staff" json:"staff_id"`
	ContractID  *uint64   `gorm:"column:contract_id;index:idx_activity_contract" json:"-"`
	Action      string    `gorm:"column:action;size:32;not null" json:"action"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
