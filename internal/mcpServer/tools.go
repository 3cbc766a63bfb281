package mcpServer

import (
	"context"
	"errors"
	"strings"

	"github.com/akolanti/LegalDocAPI/internal/adapter"
	"github.com/akolanti/LegalDocAPI/internal/api"
	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type DocumentInput struct {
	DocId string `json:"doc_id" jsonschema:"the document id returned by /upload"`
}

type SummarizeInput struct {
	DocId string `json:"doc_id" jsonschema:"the document id returned by /upload"`
	Mode  string `json:"mode,omitempty" jsonschema:"abstractive (default), any other value returns extractive sentences"`
}

type QuestionInput struct {
	DocId    string `json:"doc_id" jsonschema:"the document id returned by /upload"`
	Question string `json:"question" jsonschema:"the question or search query"`
	K        int    `json:"k,omitempty" jsonschema:"number of sentences to retrieve (default 5)"`
}

type RiskInput struct {
	DocId     string  `json:"doc_id" jsonschema:"the document id returned by /upload"`
	Threshold float64 `json:"threshold,omitempty" jsonschema:"minimum risk score between 0 and 1"`
}

type NoInput struct{}

type SummaryOutput struct {
	DocId     string   `json:"doc_id"`
	Paragraph string   `json:"paragraph,omitempty"`
	Sentences []string `json:"sentences,omitempty"`
}

type DocumentOutput struct {
	DocId     string `json:"doc_id"`
	Title     string `json:"title"`
	Sentences int    `json:"sentences"`
	Indexed   bool   `json:"indexed"`
	Retriever string `json:"retriever,omitempty"`
}

type ListOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarize_document",
		Description: "Summarize an uploaded legal document",
	}, s.handleSummarize)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_document",
		Description: "Build the sentence index of a document so it can be searched and questioned",
	}, s.handleIndex)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_document",
		Description: "Answer a question using the most relevant sentences of an indexed document",
	}, s.handleAsk)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_document",
		Description: "Return the sentences of an indexed document most similar to a query",
	}, s.handleSearch)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "flag_risks",
		Description: "List clauses with one-sided liability or termination language",
	}, s.handleRisk)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the documents uploaded since the server started",
	}, s.handleList)
}

func (s *Server) handleSummarize(ctx context.Context, _ *mcp.CallToolRequest, in SummarizeInput) (*mcp.CallToolResult, SummaryOutput, error) {
	mode := documentModel.SummaryMode(strings.ToLower(strings.TrimSpace(in.Mode)))
	if mode == "" {
		mode = documentModel.SummaryAbstractive
	}
	res, err := s.service.Summarize(ctx, in.DocId, mode)
	if err != nil {
		return nil, SummaryOutput{}, s.toolError(ctx, "summarize_document", err, api.SoftDocumentNotFound)
	}
	out := SummaryOutput{DocId: res.DocId, Paragraph: res.Paragraph}
	if res.IsList {
		out.Sentences = res.Sentences
	}
	return nil, out, nil
}

func (s *Server) handleIndex(ctx context.Context, _ *mcp.CallToolRequest, in DocumentInput) (*mcp.CallToolResult, api.IndexResponse, error) {
	res, err := s.service.Index(ctx, in.DocId)
	if err != nil {
		return nil, api.IndexResponse{}, s.toolError(ctx, "index_document", err, api.SoftDocNotFound)
	}
	return nil, adapter.ToIndexResponse(res), nil
}

func (s *Server) handleAsk(ctx context.Context, _ *mcp.CallToolRequest, in QuestionInput) (*mcp.CallToolResult, api.AskResponse, error) {
	if strings.TrimSpace(in.Question) == "" {
		return nil, api.AskResponse{}, errors.New("question is required")
	}
	res, err := s.service.Ask(ctx, in.DocId, in.Question, in.K)
	if err != nil {
		return nil, api.AskResponse{}, s.toolError(ctx, "ask_document", err, api.SoftDocumentNotFound)
	}
	return nil, adapter.ToAskResponse(res), nil
}

func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, in QuestionInput) (*mcp.CallToolResult, api.SearchResponse, error) {
	if strings.TrimSpace(in.Question) == "" {
		return nil, api.SearchResponse{}, errors.New("question is required")
	}
	res, err := s.service.Search(ctx, in.DocId, in.Question, in.K)
	if err != nil {
		return nil, api.SearchResponse{}, s.toolError(ctx, "search_document", err, api.SoftDocumentNotFound)
	}
	return nil, adapter.ToSearchResponse(res), nil
}

func (s *Server) handleRisk(ctx context.Context, _ *mcp.CallToolRequest, in RiskInput) (*mcp.CallToolResult, api.RiskResponse, error) {
	if in.Threshold < 0 || in.Threshold > 1 {
		return nil, api.RiskResponse{}, errors.New("threshold must be between 0 and 1")
	}
	clauses, err := s.service.Risk(ctx, in.DocId, in.Threshold)
	if err != nil {
		return nil, api.RiskResponse{}, s.toolError(ctx, "flag_risks", err, api.SoftDocumentNotFound)
	}
	return nil, adapter.ToRiskResponse(in.DocId, clauses), nil
}

func (s *Server) handleList(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, ListOutput, error) {
	docs := s.service.ListDocuments(ctx)
	out := ListOutput{Documents: make([]DocumentOutput, 0, len(docs)), Count: len(docs)}
	for _, d := range docs {
		info := adapter.ToDocumentInfo(d)
		out.Documents = append(out.Documents, DocumentOutput{
			DocId:     info.DocId,
			Title:     info.Title,
			Sentences: info.Sentences,
			Indexed:   info.Indexed,
			Retriever: info.Retriever,
		})
	}
	return nil, out, nil
}

// toolError turns the in-band messages of the HTTP api into tool errors the client can show.
// notFound is the message the matching HTTP route uses for a missing document.
func (s *Server) toolError(ctx context.Context, tool string, err error, notFound string) error {
	switch {
	case errors.Is(err, documentModel.ErrDocumentNotFound):
		return errors.New(notFound)
	case errors.Is(err, documentModel.ErrNotIndexed):
		return errors.New(api.SoftNotIndexed)
	case errors.Is(err, documentModel.ErrNoSentences):
		return errors.New(api.SoftNoSentences)
	}
	s.logger.WithContext(ctx).Error("tool failed", "tool", tool, "error", err)
	return err
}
