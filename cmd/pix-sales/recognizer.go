package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/zombor/pix-sales/internal/recognition"
	"github.com/zombor/pix-sales/internal/server"
)

// newRecognizer builds the configured back end, wrapped with the rate limiter
// and transcript cache when those are enabled. A back end that cannot start
// comes back as recognition.Unavailable with its status explaining why.
func newRecognizer(g *globalFlags) (recognition.Recognizer, server.RecognizerStatus, error) {
	status := server.RecognizerStatus{Backend: *g.scanner}

	var (
		backend   recognition.Recognizer
		namespace string
	)
	switch *g.scanner {
	case "tesseract":
		cfg := recognition.LocateTesseract(*g.tesseractPath, *g.tesseractLang)
		t, err := recognition.NewTesseract(cfg)
		if err != nil {
			return unavailable(status, err)
		}
		slog.Info("Initializing tesseract recognizer...", "path", cfg.Path, "language", cfg.Language)
		backend, namespace = t, "tesseract/"+cfg.Language

	case "gemini":
		apiKey := *g.geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		gem, err := recognition.NewGemini(apiKey, *g.geminiModel)
		if err != nil {
			return unavailable(status, err)
		}
		slog.Info("Initializing Gemini recognizer...", "model", *g.geminiModel)
		backend = recognition.NewRateLimited(gem, *g.rateLimit, 1)
		namespace = "gemini/" + *g.geminiModel

	case "ollama":
		o, err := recognition.NewOllama(*g.ollamaURL, *g.ollamaModel)
		if err != nil {
			return unavailable(status, err)
		}
		slog.Info("Initializing Ollama recognizer...", "url", *g.ollamaURL, "model", *g.ollamaModel)
		backend = recognition.NewRateLimited(o, *g.rateLimit, 1)
		namespace = "ollama/" + *g.ollamaModel

	default:
		return nil, status, fmt.Errorf("invalid scanner type %q (valid: tesseract, gemini, ollama)", *g.scanner)
	}
	status.Available = true

	if *g.cachePath == "" {
		return backend, status, nil
	}
	cache, err := recognition.NewBoltCache(*g.cachePath)
	if err != nil {
		backend.Close()
		return nil, status, fmt.Errorf("opening transcript cache: %w", err)
	}
	slog.Info("Transcript cache enabled", "path", *g.cachePath)
	return recognition.NewCached(backend, cache, namespace), status, nil
}

func unavailable(status server.RecognizerStatus, err error) (recognition.Recognizer, server.RecognizerStatus, error) {
	status.Available = false
	status.Detail = err.Error()
	return recognition.Unavailable{Err: err}, status, nil
}
