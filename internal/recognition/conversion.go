package recognition

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"
)

// pdfToImage renders the first page of a PDF receipt as PNG
func pdfToImage(pdfData []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("%w: opening PDF: %v", ErrUndecodable, err)
	}
	defer doc.Close()

	// Bank apps export Pix receipts as a single page
	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("%w: rendering PDF page: %v", ErrUndecodable, err)
	}

	return encodePNG(img)
}

// imageToPNG decodes any supported image format and re-encodes it as PNG
func imageToPNG(imageData []byte, mimeType string) ([]byte, error) {
	var img image.Image
	var err error

	if isHEICFormat(imageData) || isHEICMimeType(mimeType) {
		// Screenshots shared from iPhones arrive as HEIC, which image.Decode can't read
		img, err = heic.Decode(bytes.NewReader(imageData))
		if err != nil {
			return nil, fmt.Errorf("%w: decoding HEIC/HEIF image: %v", ErrUndecodable, err)
		}
	} else {
		img, _, err = image.Decode(bytes.NewReader(imageData))
		if err != nil {
			if msg := err.Error(); strings.Contains(msg, "unknown format") || strings.Contains(msg, "unsupported") {
				return nil, fmt.Errorf("%w: unsupported image format (supported: JPEG, PNG, GIF, HEIC, HEIF, PDF): %v", ErrUndecodable, err)
			}
			return nil, fmt.Errorf("%w: decoding image: %v", ErrUndecodable, err)
		}
	}

	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// isHEICFormat checks for an ftyp box with a HEIC-family brand at offset 4
func isHEICFormat(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heif", "mif1", "msf1":
		return true
	}
	return false
}

func isHEICMimeType(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	return strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif")
}

// normalizeImage converts PDFs and non-PNG images to PNG. PNG input is still
// decoded once so corrupt uploads fail here rather than inside the OCR engine.
func normalizeImage(imageData []byte, contentType string) ([]byte, error) {
	mimeType := strings.ToLower(strings.TrimSpace(contentType))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	if len(imageData) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrUndecodable)
	}

	if mimeType == "application/pdf" {
		return pdfToImage(imageData)
	}
	if mimeType == "image/png" && !isHEICFormat(imageData) {
		if _, err := png.DecodeConfig(bytes.NewReader(imageData)); err != nil {
			return nil, fmt.Errorf("%w: decoding PNG: %v", ErrUndecodable, err)
		}
		return imageData, nil
	}
	return imageToPNG(imageData, mimeType)
}
