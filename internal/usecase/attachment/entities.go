package attachment

import (
	"io"

	"pawnshop-backoffice/internal/domain/attachment"
)

const MaxUploadBytes = 5 << 20

// Allowed content types and the extension stored objects get.
var allowedTypes = map[string]string{
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"image/webp":      "webp",
	"application/pdf": "pdf",
}

type UploadInput struct {
	// Folder under the blob root, e.g. "contracts/receiving".
	Prefix      string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader

	// Optional: link the object to a contract.
	ContractID string
	ImageType  attachment.ImageType
}

type UploadResult struct {
	attachment.Object
	FileName    string            `json:"file_name"`
	ContentType string            `json:"content_type"`
	Image       *attachment.Image `json:"image,omitempty"`
}
