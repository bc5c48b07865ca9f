package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/peterbourgon/ff/v4"

	"github.com/zombor/pix-sales/internal/export"
	"github.com/zombor/pix-sales/internal/extraction"
	"github.com/zombor/pix-sales/internal/sales"
)

const formatJSON = "json"

func newExtractCommand(parent *ff.FlagSet, global *globalFlags, stdout io.Writer) *ff.Command {
	fs := ff.NewFlagSet("extract").SetParent(parent)
	var (
		format = fs.StringLong("format", string(export.FormatReport), "Output format: report, json, csv or xlsx")
		outDir = fs.StringLong("out", "", "Write the export into this directory instead of stdout")
	)

	return &ff.Command{
		Name:      "extract",
		Usage:     "pix-sales extract [FLAGS] FILE...",
		ShortHelp: "Extract sales from receipt images and PDFs",
		Flags:     fs,
		Exec: func(ctx context.Context, args []string) error {
			if err := setupLogging(*global.logLevel, *global.logJSON); err != nil {
				return err
			}
			return runExtract(ctx, global, *format, *outDir, args, stdout)
		},
	}
}

func runExtract(ctx context.Context, global *globalFlags, format, outDir string, paths []string, stdout io.Writer) error {
	if len(paths) == 0 {
		return errors.New("no receipt files given")
	}

	var exportFormat export.Format
	if format != formatJSON {
		f, err := export.ParseFormat(format)
		if err != nil {
			return err
		}
		exportFormat = f
	}

	cfg, err := global.batchConfig()
	if err != nil {
		return err
	}

	recognizer, status, err := newRecognizer(global)
	if err != nil {
		return err
	}
	defer recognizer.Close()
	if !status.Available {
		return fmt.Errorf("%s recognizer unavailable: %s", status.Backend, status.Detail)
	}

	service := sales.NewService(recognizer, *global.concurrency)
	result, err := extractFiles(ctx, service, cfg, paths)
	if err != nil {
		return err
	}

	records, failures := extraction.Split(result.Outcomes)
	if len(failures) > 0 {
		slog.Warn("Some receipts could not be read", "records", len(records), "errors", len(failures))
	}

	var buf bytes.Buffer
	var filename string
	if exportFormat == "" {
		filename = export.Basename(cfg.ProductLabel) + ".json"
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(map[string]interface{}{
			"batch":    result.Batch,
			"outcomes": result.Outcomes,
			"summary":  export.Summarize(cfg.ProductLabel, result.Outcomes),
		})
	} else {
		filename = export.Filename(cfg.ProductLabel, exportFormat)
		err = export.Write(&buf, exportFormat, cfg.ProductLabel, result.Outcomes)
	}
	if err != nil {
		return fmt.Errorf("rendering %s: %w", format, err)
	}

	if outDir == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}

	sink, err := export.NewDirSink(outDir)
	if err != nil {
		return err
	}
	path, err := sink.Save(filename, buf.Bytes())
	if err != nil {
		return err
	}
	slog.Info("Export written", "path", path, "records", len(records), "errors", len(failures))
	return nil
}

// extractFiles reads every path and processes the batch. A file that cannot
// be read becomes an ExtractionError in its position like any other bad input.
func extractFiles(ctx context.Context, service *sales.Service, cfg sales.BatchConfig, paths []string) (*sales.BatchResult, error) {
	outcomes := make([]extraction.Outcome, len(paths))
	uploads := make([]sales.Upload, 0, len(paths))
	positions := make([]int, 0, len(paths))

	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Error("Failed to read receipt", "path", path, "error", err)
			outcomes[i] = extraction.NewExtractionError(path, fmt.Errorf("reading file: %w", err))
			continue
		}
		uploads = append(uploads, sales.Upload{Filename: path, Data: data})
		positions = append(positions, i)
	}

	result, err := service.ProcessBatch(ctx, cfg, uploads)
	if err != nil {
		return nil, err
	}

	for j, o := range result.Outcomes {
		outcomes[positions[j]] = o
	}
	result.Outcomes = outcomes
	result.Batch.Size = len(paths)
	return result, nil
}
