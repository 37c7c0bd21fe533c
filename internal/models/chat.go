package models

// ChatDocuments carries the original file names of the analyzed documents.
type ChatDocuments struct {
	Tender   string `json:"tender,omitempty"`
	Proposal string `json:"proposal,omitempty"`
}

// ChatContext is everything the service knows when answering a follow-up
// question. The service is stateless: the client resends the prior analysis
// with every chat request.
type ChatContext struct {
	AnalysisResult *AnalysisResult `json:"analysisResult,omitempty"`
	Documents      *ChatDocuments  `json:"documents,omitempty"`
}

type ChatRequest struct {
	Message string       `json:"message"`
	Context *ChatContext `json:"context,omitempty"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
