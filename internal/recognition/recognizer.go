package recognition

import (
	"context"
	"errors"
)

var (
	// ErrRecognizerUnavailable is returned when a recognizer back end cannot
	// be constructed, e.g. the tesseract binary is not installed.
	ErrRecognizerUnavailable = errors.New("recognizer unavailable")

	// ErrUndecodable wraps failures to open or decode the uploaded image
	ErrUndecodable = errors.New("image could not be decoded")
)

// Recognizer defines the interface for turning a receipt image into raw text
type Recognizer interface {
	// Recognize returns the text found in a receipt image/PDF
	Recognize(ctx context.Context, imageData []byte, contentType string) (string, error)
	// Close closes the recognizer and releases resources
	Close() error
}

// Unavailable stands in for a back end that could not be started. Every call
// fails with the error that prevented it from starting.
type Unavailable struct {
	Err error
}

func (u Unavailable) Recognize(ctx context.Context, imageData []byte, contentType string) (string, error) {
	return "", u.Err
}

func (Unavailable) Close() error {
	return nil
}
