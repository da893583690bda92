package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/aiesanjusto/resumen-bancario/internal/cache"
	"github.com/aiesanjusto/resumen-bancario/internal/classifier"
	"github.com/aiesanjusto/resumen-bancario/internal/extractor"
	"github.com/aiesanjusto/resumen-bancario/internal/logger"
	"github.com/aiesanjusto/resumen-bancario/internal/models"
	"github.com/aiesanjusto/resumen-bancario/internal/parser"
	"github.com/aiesanjusto/resumen-bancario/internal/report"
	"github.com/aiesanjusto/resumen-bancario/internal/writer"
)

// ConvertResponse is the JSON response from POST /api/convert.
type ConvertResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
	Cached    bool   `json:"cached"`

	Statement *models.Statement `json:"statement,omitempty"`
	Summary   *report.Summary   `json:"summary,omitempty"`
	CSV       string            `json:"csv,omitempty"`
	Count     int               `json:"count"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Classifier *classifier.Classifier
	Cache      *cache.Store
}

// Register sets up the API routes on the fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Post("/api/convert", h.handleConvert)
	app.Get("/api/health", h.handleHealth)
}

func (h *Handler) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleConvert accepts either a multipart "file" (a statement PDF, or an
// already-extracted .txt/.csv dump) or a "text" form value with the raw
// statement text, and returns the parsed, classified and reconciled result.
func (h *Handler) handleConvert(c *fiber.Ctx) error {
	requestID := uuid.NewString()
	log := logger.L.With("requestId", requestID)

	text := c.FormValue("text")
	if text == "" {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, requestID, "no input: upload form field 'file' or send raw text in 'text'")
		}
		text, err = h.readUpload(c, fh)
		if err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, requestID, err.Error())
		}
	}

	st, cached, err := h.Cache.GetOrParse(text, h.parseAndClassify)
	if err != nil {
		if errors.Is(err, parser.ErrNoMovements) {
			// Structural failure: distinct from a statement with zero
			// movements, which parses fine and returns success.
			log.Warn("statement rejected, no movements block", "error", err)
			return writeError(c, fiber.StatusUnprocessableEntity, requestID, err.Error())
		}
		return writeError(c, fiber.StatusInternalServerError, requestID, err.Error())
	}

	var csvBuf bytes.Buffer
	cw := &writer.CSVWriter{IncludeHeader: true}
	if err := cw.Write(&csvBuf, st); err != nil {
		return writeError(c, fiber.StatusInternalServerError, requestID, err.Error())
	}

	log.Info("statement converted", "movements", len(st.Movements), "cached", cached)
	return c.JSON(ConvertResponse{
		Success:   true,
		RequestID: requestID,
		Cached:    cached,
		Statement: st,
		Summary:   report.Build(st),
		CSV:       csvBuf.String(),
		Count:     len(st.Movements),
	})
}

// parseAndClassify is the cacheable unit of work: parse plus category
// stamping, so cache hits skip both.
func (h *Handler) parseAndClassify(text string) (*models.Statement, error) {
	st, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	h.Classifier.Apply(st)
	return st, nil
}

// readUpload extracts statement text from an uploaded file. PDFs go through
// the extractor; .txt/.csv files are treated as already-extracted text.
func (h *Handler) readUpload(c *fiber.Ctx, fh *multipart.FileHeader) (string, error) {
	name := strings.ToLower(fh.Filename)

	if strings.HasSuffix(name, ".pdf") {
		tmp, err := os.CreateTemp("", "resumen-*.pdf")
		if err != nil {
			return "", fmt.Errorf("failed to create temp file: %w", err)
		}
		tmpPath := tmp.Name()
		tmp.Close()
		defer os.Remove(tmpPath)

		if err := c.SaveFile(fh, tmpPath); err != nil {
			return "", fmt.Errorf("failed to save upload: %w", err)
		}
		return extractor.ExtractTextCombined(tmpPath)
	}

	if !strings.HasSuffix(name, ".txt") && !strings.HasSuffix(name, ".csv") {
		return "", fmt.Errorf("unsupported file type %q: expected .pdf, .txt or .csv", filepath.Ext(fh.Filename))
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	return string(data), nil
}

func writeError(c *fiber.Ctx, status int, requestID, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:   false,
		RequestID: requestID,
		Error:     msg,
	})
}
