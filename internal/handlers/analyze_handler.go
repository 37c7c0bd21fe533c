package handlers

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/SaiNikheel/tenderBot/internal/services"
)

type AnalyzeHandler struct {
	storageService services.StorageService
	analyzer       services.AnalyzerService
	maxFileSize    int64
}

func NewAnalyzeHandler(
	storageService services.StorageService,
	analyzer services.AnalyzerService,
	maxFileSize int64,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		storageService: storageService,
		analyzer:       analyzer,
		maxFileSize:    maxFileSize,
	}
}

// HandleAnalyze accepts the tender and proposal PDFs, runs the analysis
// pipeline, and returns the structured result. Temporary files are removed
// on success and failure alike.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	tenderFile, err := c.FormFile("tender")
	if err != nil {
		return writeError(c, &services.ValidationError{Message: "tender document is required"})
	}

	proposalFile, err := c.FormFile("proposal")
	if err != nil {
		return writeError(c, &services.ValidationError{Message: "proposal document is required"})
	}

	if err := h.checkSize("tender", tenderFile); err != nil {
		return writeError(c, err)
	}
	if err := h.checkSize("proposal", proposalFile); err != nil {
		return writeError(c, err)
	}

	tenderName, tenderPath, err := h.storageService.SaveFile(tenderFile, "tender")
	if err != nil {
		return writeError(c, err)
	}
	defer h.cleanup(tenderName)

	proposalName, proposalPath, err := h.storageService.SaveFile(proposalFile, "proposal")
	if err != nil {
		return writeError(c, err)
	}
	defer h.cleanup(proposalName)

	log.Info().
		Str("tender", tenderFile.Filename).
		Str("proposal", proposalFile.Filename).
		Msg("starting document analysis")

	// Detached from the connection context: once started, the pipeline runs
	// to completion server-side even if the client goes away. The gateway
	// applies the request timeout.
	result, err := h.analyzer.AnalyzeDocuments(context.Background(), tenderPath, proposalPath)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(result)
}

func (h *AnalyzeHandler) checkSize(docType string, file *multipart.FileHeader) error {
	if file.Size > h.maxFileSize {
		return &services.ValidationError{
			Message: fmt.Sprintf("%s document too large, max size is %d bytes", docType, h.maxFileSize),
		}
	}
	return nil
}

func (h *AnalyzeHandler) cleanup(filename string) {
	if err := h.storageService.DeleteFile(filename); err != nil {
		log.Warn().Err(err).Str("file", filename).Msg("failed to remove temporary file")
	}
}
