package services

import (
	"strings"
	"testing"

	"github.com/SaiNikheel/tenderBot/internal/models"
)

func TestBuildAnalysisPromptDeterministic(t *testing.T) {
	pb := NewPromptBuilder()

	first := pb.BuildAnalysisPrompt("tender requirements", "proposal content")
	second := pb.BuildAnalysisPrompt("tender requirements", "proposal content")

	if first != second {
		t.Error("Expected identical inputs to produce byte-identical prompts")
	}

	if !strings.Contains(first, "tender requirements") {
		t.Error("Expected prompt to embed tender text")
	}
	if !strings.Contains(first, "proposal content") {
		t.Error("Expected prompt to embed proposal text")
	}
}

func TestBuildAnalysisPromptTruncatesLongDocuments(t *testing.T) {
	pb := NewPromptBuilder()

	long := strings.Repeat("a", maxDocumentChars+5000) + "SENTINEL"
	prompt := pb.BuildAnalysisPrompt(long, long)

	if strings.Contains(prompt, "SENTINEL") {
		t.Error("Expected text beyond the truncation limit to be dropped")
	}
	if !strings.Contains(prompt, strings.Repeat("a", maxDocumentChars)) {
		t.Error("Expected the full truncated prefix to be embedded")
	}
	if strings.Contains(prompt, strings.Repeat("a", maxDocumentChars+1)) {
		t.Errorf("Expected each document to be capped at %d characters", maxDocumentChars)
	}
}

func TestBuildAnalysisPromptShortInputUnchanged(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildAnalysisPrompt("short tender", "short proposal")
	if !strings.Contains(prompt, "short tender") || !strings.Contains(prompt, "short proposal") {
		t.Error("Expected short inputs to be embedded untruncated")
	}
}

func TestBuildChatPromptEmbedsContext(t *testing.T) {
	pb := NewPromptBuilder()

	chatContext := &models.ChatContext{
		AnalysisResult: &models.AnalysisResult{
			Summary: models.SummaryStats{RiskLevel: "medium"},
		},
		Documents: &models.ChatDocuments{
			Tender:   "tender.pdf",
			Proposal: "proposal.pdf",
		},
	}

	prompt := pb.BuildChatPrompt("What is the risk level?", chatContext)

	if !strings.Contains(prompt, "What is the risk level?") {
		t.Error("Expected prompt to embed the question")
	}
	if !strings.Contains(prompt, "tender.pdf") {
		t.Error("Expected prompt to embed the serialized context")
	}
	if !strings.Contains(prompt, `"riskLevel": "medium"`) {
		t.Error("Expected prompt to embed the analysis summary")
	}

	again := pb.BuildChatPrompt("What is the risk level?", chatContext)
	if prompt != again {
		t.Error("Expected chat prompt to be deterministic")
	}
}

func TestBuildChatPromptNilContext(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildChatPrompt("hello", nil)
	if !strings.Contains(prompt, "hello") {
		t.Error("Expected prompt to embed the question even without context")
	}
}
