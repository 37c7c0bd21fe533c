package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/SaiNikheel/tenderBot/internal/models"
)

const (
	analysisTemperature float32 = 0.3
	chatTemperature     float32 = 0.5

	// Returned on the chat path when the model call fails, so the
	// conversation degrades instead of breaking.
	chatFallbackMessage = "I apologize, but I'm experiencing technical difficulties. Please try again or rephrase your question about the tender analysis."
)

// AnalyzerService orchestrates the analysis pipeline
// (extract -> prompt -> generate -> validate) and the two-stage chat path
// (prompt -> generate). Each call is self-contained; the pipeline aborts on
// the first failing stage and returns no partial result.
type AnalyzerService interface {
	AnalyzeDocuments(ctx context.Context, tenderPath, proposalPath string) (*models.AnalysisResult, error)
	Chat(ctx context.Context, message string, chatContext *models.ChatContext) (string, error)
}

type analyzerService struct {
	gemini        GeminiService
	pdfParser     PDFParserService
	validator     *ResponseValidator
	promptBuilder *PromptBuilder
}

func NewAnalyzerService(gemini GeminiService, pdfParser PDFParserService) AnalyzerService {
	return &analyzerService{
		gemini:        gemini,
		pdfParser:     pdfParser,
		validator:     NewResponseValidator(),
		promptBuilder: NewPromptBuilder(),
	}
}

func (a *analyzerService) AnalyzeDocuments(ctx context.Context, tenderPath, proposalPath string) (*models.AnalysisResult, error) {
	log.Info().Msg("extracting tender document text")
	tenderText, err := a.pdfParser.ExtractText(tenderPath)
	if err != nil {
		return nil, &ExtractionError{Document: "tender", Err: err}
	}

	log.Info().Msg("extracting proposal document text")
	proposalText, err := a.pdfParser.ExtractText(proposalPath)
	if err != nil {
		return nil, &ExtractionError{Document: "proposal", Err: err}
	}

	prompt := a.promptBuilder.BuildAnalysisPrompt(tenderText, proposalText)
	log.Info().Int("prompt_chars", len(prompt)).Msg("requesting compliance analysis")

	raw, err := a.gemini.GenerateText(ctx, prompt, analysisTemperature)
	if err != nil {
		return nil, err
	}

	result, err := a.validator.ParseAnalysis(raw)
	if err != nil {
		log.Error().Err(err).Int("response_chars", len(raw)).Msg("model reply failed shape validation")
		return nil, err
	}

	log.Info().
		Int("matches", len(result.Matches)).
		Int("mismatches", len(result.Mismatches)).
		Msg("analysis completed")

	return result, nil
}

// Chat answers a follow-up question against the context the client resent.
// The raw model text is returned as-is; a gateway failure degrades to a
// canned apology rather than an error so the conversation stays usable.
func (a *analyzerService) Chat(ctx context.Context, message string, chatContext *models.ChatContext) (string, error) {
	prompt := a.promptBuilder.BuildChatPrompt(message, chatContext)

	response, err := a.gemini.GenerateText(ctx, prompt, chatTemperature)
	if err != nil {
		var gatewayErr *GatewayError
		if errors.As(err, &gatewayErr) {
			log.Warn().Err(err).Msg("chat generation failed, returning fallback message")
			return chatFallbackMessage, nil
		}
		return "", err
	}

	return response, nil
}
