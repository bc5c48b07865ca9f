package sales

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zombor/pix-sales/internal/extraction"
)

// Upload is one receipt file handed to the service
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// BatchConfig is the per-run configuration shared by every receipt
type BatchConfig struct {
	ProductLabel string
	UnitPrice    decimal.Decimal
}

// Batch identifies one processing run
type Batch struct {
	ID           string          `json:"id"`
	ProductLabel string          `json:"product_label"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Size         int             `json:"size"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BatchResult holds one outcome per upload, in upload order
type BatchResult struct {
	Batch    Batch                `json:"batch"`
	Outcomes []extraction.Outcome `json:"outcomes"`
}

// ContentTypeFor returns the upload's declared content type, falling back to
// the file extension when the client didn't send one
func ContentTypeFor(filename, declared string) string {
	contentType := strings.ToLower(strings.TrimSpace(declared))
	if contentType != "" && contentType != "application/octet-stream" {
		return contentType
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}

// ParseUnitPrice accepts "5", "5.50" and the pt-BR "5,50" / "1.234,50"
func ParseUnitPrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
