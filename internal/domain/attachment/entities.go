package attachment

import "time"

type ImageType string

const (
	ImageReceiving  ImageType = "RECEIVING"
	ImageInspection ImageType = "INSPECTION"
	ImageReturning  ImageType = "RETURNING"
	ImageDamage     ImageType = "DAMAGE"
	ImageDocument   ImageType = "DOCUMENT"
	ImageOther      ImageType = "OTHER"
)

func ValidImageType(t ImageType) bool {
	switch t {
	case ImageReceiving, ImageInspection, ImageReturning, ImageDamage, ImageDocument, ImageOther:
		return true
	}
	return false
}

// Table: contract_images. Points at an object in the blob store.
type Image struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ContractID   uint64    `gorm:"column:contract_id;not null;index:idx_contract_images_contract" json:"-"`
	InspectionID *uint64   `gorm:"column:inspection_id;index" json:"-"`
	ImageType    ImageType `gorm:"column:image_type;size:16;not null" json:"image_type"`
	Path         string    `gorm:"column:image_path;size:512;not null;uniqueIndex:ux_contract_images_path" json:"image_path"`
	FileName     string    `gorm:"column:file_name;size:255" json:"file_name"`
	SizeBytes    int64     `gorm:"column:file_size;not null;default:0" json:"file_size"`
	MimeType     string    `gorm:"column:mime_type;size:64" json:"mime_type"`
	UploadedBy   string    `gorm:"column:uploaded_by;type:char(32);not null" json:"uploaded_by"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Image) TableName() string { return "contract_images" }
