package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/zombor/pix-sales/internal/export"
	"github.com/zombor/pix-sales/internal/sales"
)

const (
	// Phone photos of receipts can be large; a batch is capped as a whole
	maxFormSize = int64(50 << 20) // 50MB

	tooLargeMessage = "Upload is too large. Maximum size is 50MB per batch."
)

// writeJSONError writes an error response with CORS headers set
func writeJSONError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// parseBatchConfig reads the product label and unit price form values
func parseBatchConfig(product, unitPrice string) (sales.BatchConfig, error) {
	price, err := sales.ParseUnitPrice(unitPrice)
	if err != nil {
		return sales.BatchConfig{}, errors.New("unit_price must be a number, e.g. 5,50")
	}
	if price.IsNegative() {
		return sales.BatchConfig{}, errors.New("unit_price must not be negative")
	}
	return sales.BatchConfig{ProductLabel: product, UnitPrice: price}, nil
}

// handleExtract runs a batch over the uploaded receipts. The response is JSON
// unless ?format asks for one of the export formats.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	var exportFormat export.Format
	if format != "" && format != "json" {
		f, err := export.ParseFormat(format)
		if err != nil {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		exportFormat = f
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSONError(w, tooLargeMessage, http.StatusRequestEntityTooLarge)
			return
		}
		writeJSONError(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	cfg, err := parseBatchConfig(r.FormValue("product"), r.FormValue("unit_price"))
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeJSONError(w, "No files were selected. Please choose at least one receipt.", http.StatusBadRequest)
		return
	}

	uploads := make([]sales.Upload, 0, len(headers))
	for _, header := range headers {
		upload, err := readUpload(header)
		if err != nil {
			slog.Error("Error reading file data", "error", err, "filename", header.Filename)
			writeJSONError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
			return
		}
		uploads = append(uploads, upload)
	}

	result, err := s.service.ProcessBatch(r.Context(), cfg, uploads)
	if err != nil {
		slog.Error("Error processing batch", "error", err, "files", len(uploads))
		writeJSONError(w, "Error processing batch", http.StatusInternalServerError)
		return
	}

	if exportFormat == "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"batch":    result.Batch,
			"outcomes": result.Outcomes,
			"summary":  export.Summarize(cfg.ProductLabel, result.Outcomes),
		})
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, exportFormat, cfg.ProductLabel, result.Outcomes); err != nil {
		slog.Error("Error rendering export", "error", err, "format", exportFormat, "batch_id", result.Batch.ID)
		writeJSONError(w, "Error rendering export", http.StatusInternalServerError)
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", exportFormat.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": export.Filename(cfg.ProductLabel, exportFormat),
	}))
	w.Write(buf.Bytes())
}

func readUpload(header *multipart.FileHeader) (sales.Upload, error) {
	f, err := header.Open()
	if err != nil {
		return sales.Upload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return sales.Upload{}, err
	}

	return sales.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

type extractTextRequest struct {
	Text      string `json:"text"`
	Source    string `json:"source"`
	Product   string `json:"product"`
	UnitPrice string `json:"unit_price"`
}

// handleExtractText runs field extraction on text the client already has
func (s *Server) handleExtractText(w http.ResponseWriter, r *http.Request) {
	var req extractTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cfg, err := parseBatchConfig(req.Product, req.UnitPrice)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Source == "" {
		req.Source = "texto"
	}

	writeJSON(w, http.StatusOK, s.service.ExtractText(cfg, req.Source, req.Text))
}

// handleHealth reports whether the recognizer back end can serve requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	code := http.StatusOK
	if !s.status.Available {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, s.status)
}
