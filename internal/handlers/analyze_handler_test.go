package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/SaiNikheel/tenderBot/internal/models"
	"github.com/SaiNikheel/tenderBot/internal/services"
)

const testAnalysisJSON = `{
	"matches": [
		{"id": 1, "requirement": "ISO 9001", "status": "matched", "description": "present", "evidence": "annex B", "category": "certification"}
	],
	"mismatches": [
		{"id": 1, "requirement": "Indemnity insurance", "status": "missing", "description": "absent", "impact": "high", "category": "insurance", "recommendation": "obtain cover"}
	],
	"recommendations": ["obtain cover"],
	"summary": {
		"totalRequirements": 10,
		"matchedRequirements": 7,
		"mismatchedRequirements": 2,
		"complianceRate": 70,
		"riskLevel": "medium",
		"competitivePosition": "moderate"
	}
}`

type countingGemini struct {
	mu       sync.Mutex
	calls    int
	response string
	err      error
}

func (g *countingGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()

	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func (g *countingGemini) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type stubParser struct {
	text string
	err  error
}

func (p *stubParser) ExtractText(filePath string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

type uploadFile struct {
	field       string
	name        string
	contentType string
	content     []byte
}

func newTestApp(t *testing.T, gemini services.GeminiService, parser services.PDFParserService) (*fiber.App, string) {
	t.Helper()

	uploadDir := t.TempDir()
	storage := services.NewStorageService(uploadDir)
	analyzer := services.NewAnalyzerService(gemini, parser)

	app := fiber.New()
	api := app.Group("/api")
	api.Post("/analyze", NewAnalyzeHandler(storage, analyzer, 20*1024*1024).HandleAnalyze)
	api.Post("/chat", NewChatHandler(analyzer).HandleChat)

	return app, uploadDir
}

func newAnalyzeRequest(t *testing.T, files []uploadFile) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.field, f.name))
		header.Set("Content-Type", f.contentType)

		part, err := w.CreatePart(header)
		if err != nil {
			t.Fatalf("Failed to create multipart part: %v", err)
		}
		if _, err := part.Write(f.content); err != nil {
			t.Fatalf("Failed to write part content: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func pdfUpload(field string) uploadFile {
	return uploadFile{
		field:       field,
		name:        field + ".pdf",
		contentType: "application/pdf",
		content:     []byte("%PDF-1.4 stub"),
	}
}

func assertUploadDirEmpty(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected temporary files to be removed, found %d entries", len(entries))
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	gemini := &countingGemini{response: testAnalysisJSON}
	app, uploadDir := newTestApp(t, gemini, &stubParser{text: "document text"})

	req := newAnalyzeRequest(t, []uploadFile{pdfUpload("tender"), pdfUpload("proposal")})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var result models.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result.Matches == nil || result.Mismatches == nil {
		t.Error("Expected matches and mismatches in the response body")
	}
	if result.Summary.ComplianceRate != 70 {
		t.Errorf("Expected summary to pass through, got rate %v", result.Summary.ComplianceRate)
	}
	if gemini.callCount() != 1 {
		t.Errorf("Expected one model call, got %d", gemini.callCount())
	}

	assertUploadDirEmpty(t, uploadDir)
}

func TestAnalyzeMissingProposal(t *testing.T) {
	gemini := &countingGemini{response: testAnalysisJSON}
	app, uploadDir := newTestApp(t, gemini, &stubParser{text: "document text"})

	req := newAnalyzeRequest(t, []uploadFile{pdfUpload("tender")})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", resp.StatusCode)
	}
	if gemini.callCount() != 0 {
		t.Errorf("Expected zero model calls for a rejected upload, got %d", gemini.callCount())
	}

	assertUploadDirEmpty(t, uploadDir)
}

func TestAnalyzeNonPDFTender(t *testing.T) {
	gemini := &countingGemini{response: testAnalysisJSON}
	app, uploadDir := newTestApp(t, gemini, &stubParser{text: "document text"})

	req := newAnalyzeRequest(t, []uploadFile{
		{field: "tender", name: "tender.txt", contentType: "text/plain", content: []byte("plain text")},
		pdfUpload("proposal"),
	})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", resp.StatusCode)
	}
	if gemini.callCount() != 0 {
		t.Errorf("Expected zero model calls before validation passed, got %d", gemini.callCount())
	}

	assertUploadDirEmpty(t, uploadDir)
}

func TestAnalyzeOversizedUpload(t *testing.T) {
	gemini := &countingGemini{response: testAnalysisJSON}

	uploadDir := t.TempDir()
	storage := services.NewStorageService(uploadDir)
	analyzer := services.NewAnalyzerService(gemini, &stubParser{text: "document text"})

	app := fiber.New()
	app.Post("/api/analyze", NewAnalyzeHandler(storage, analyzer, 8).HandleAnalyze)

	req := newAnalyzeRequest(t, []uploadFile{pdfUpload("tender"), pdfUpload("proposal")})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400 for oversized upload, got %d", resp.StatusCode)
	}
	if gemini.callCount() != 0 {
		t.Errorf("Expected zero model calls, got %d", gemini.callCount())
	}
}

func TestAnalyzeUnreadablePDF(t *testing.T) {
	gemini := &countingGemini{response: testAnalysisJSON}
	app, uploadDir := newTestApp(t, gemini, &stubParser{err: fmt.Errorf("failed to open PDF")})

	req := newAnalyzeRequest(t, []uploadFile{pdfUpload("tender"), pdfUpload("proposal")})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d", resp.StatusCode)
	}
	if gemini.callCount() != 0 {
		t.Errorf("Expected zero model calls after extraction failure, got %d", gemini.callCount())
	}

	assertUploadDirEmpty(t, uploadDir)
}

func TestAnalyzeProseModelReply(t *testing.T) {
	gemini := &countingGemini{response: "Sorry, I can only answer questions about these documents in prose."}
	app, uploadDir := newTestApp(t, gemini, &stubParser{text: "document text"})

	req := newAnalyzeRequest(t, []uploadFile{pdfUpload("tender"), pdfUpload("proposal")})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("Expected 500 for a malformed model reply, got %d", resp.StatusCode)
	}

	var body models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if body.Error == "" {
		t.Error("Expected an error message in the body")
	}

	assertUploadDirEmpty(t, uploadDir)
}

func TestAnalyzeGatewayTimeout(t *testing.T) {
	gemini := &countingGemini{err: &services.GatewayError{Kind: services.GatewayTimeout, Message: "model call timed out"}}
	app, uploadDir := newTestApp(t, gemini, &stubParser{text: "document text"})

	req := newAnalyzeRequest(t, []uploadFile{pdfUpload("tender"), pdfUpload("proposal")})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if resp.StatusCode != http.StatusGatewayTimeout {
		t.Fatalf("Expected 504 for a timed-out gateway call, got %d", resp.StatusCode)
	}

	assertUploadDirEmpty(t, uploadDir)
}

func TestAnalyzeConcurrentRequestsDoNotInterfere(t *testing.T) {
	gemini := &countingGemini{response: testAnalysisJSON}
	app, uploadDir := newTestApp(t, gemini, &stubParser{text: "document text"})

	var wg sync.WaitGroup
	statuses := make([]int, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := newAnalyzeRequest(t, []uploadFile{pdfUpload("tender"), pdfUpload("proposal")})
			resp, err := app.Test(req, -1)
			if err != nil {
				return
			}
			io.Copy(io.Discard, resp.Body)
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	for i, status := range statuses {
		if status != http.StatusOK {
			t.Errorf("Request %d: expected 200, got %d", i, status)
		}
	}
	if gemini.callCount() != 2 {
		t.Errorf("Expected one model call per request, got %d", gemini.callCount())
	}

	assertUploadDirEmpty(t, uploadDir)
}
