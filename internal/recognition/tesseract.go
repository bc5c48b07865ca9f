package recognition

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

const (
	// DefaultTesseractLanguage is the tesseract traineddata used for Pix receipts
	DefaultTesseractLanguage = "por"

	windowsTesseractPath = `C:\Program Files\Tesseract-OCR\tesseract.exe`
)

// TesseractConfig is the tesseract installation resolved once at startup.
// An empty Path means tesseract is unavailable on this machine.
type TesseractConfig struct {
	Path     string
	Language string
}

// Available reports whether a tesseract binary was found
func (c TesseractConfig) Available() bool {
	return c.Path != ""
}

// LocateTesseract resolves the tesseract binary: the configured path if it is
// executable, then PATH, then the default Windows install location.
func LocateTesseract(configured, language string) TesseractConfig {
	return locateTesseract(configured, language, exec.LookPath, runtime.GOOS, fileExists)
}

func locateTesseract(configured, language string, lookPath func(string) (string, error), goos string, exists func(string) bool) TesseractConfig {
	if language == "" {
		language = DefaultTesseractLanguage
	}
	cfg := TesseractConfig{Language: language}

	if configured != "" {
		if path, err := lookPath(configured); err == nil {
			cfg.Path = path
		}
		// An explicit path that doesn't resolve is not silently replaced
		return cfg
	}

	if path, err := lookPath("tesseract"); err == nil {
		cfg.Path = path
		return cfg
	}
	if goos == "windows" && exists(windowsTesseractPath) {
		cfg.Path = windowsTesseractPath
	}
	return cfg
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Tesseract implements the Recognizer interface by running the tesseract CLI
type Tesseract struct {
	path     string
	language string
}

// NewTesseract creates a Tesseract recognizer from a resolved configuration
func NewTesseract(cfg TesseractConfig) (*Tesseract, error) {
	if !cfg.Available() {
		return nil, fmt.Errorf("%w: tesseract binary not found (install tesseract-ocr with the %q language or set --tesseract-path)", ErrRecognizerUnavailable, cfg.Language)
	}
	language := cfg.Language
	if language == "" {
		language = DefaultTesseractLanguage
	}
	return &Tesseract{path: cfg.Path, language: language}, nil
}

// Recognize pipes the receipt as PNG through tesseract and returns its text
func (t *Tesseract) Recognize(ctx context.Context, imageData []byte, contentType string) (string, error) {
	pngData, err := normalizeImage(imageData, contentType)
	if err != nil {
		return "", err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.path, "stdin", "stdout", "-l", t.language)
	cmd.Stdin = bytes.NewReader(pngData)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running tesseract: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Close is a no-op; each call runs its own process
func (t *Tesseract) Close() error {
	return nil
}
