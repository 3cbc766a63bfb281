package adapter

import (
	"unicode/utf8"

	"github.com/akolanti/LegalDocAPI/internal/api"
	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
	"github.com/akolanti/LegalDocAPI/internal/rag"
)

func ToUploadResponse(doc documentModel.Document) api.UploadResponse {
	return api.UploadResponse{
		DocId: doc.Id,
		Title: doc.Title,
		Chars: utf8.RuneCountInString(doc.Text),
	}
}

func ToSummarizeResponse(res rag.SummaryResult) api.SummarizeResponse {
	out := api.SummarizeResponse{DocId: res.DocId}
	if res.IsList {
		sentences := res.Sentences
		if sentences == nil {
			sentences = []string{}
		}
		out.Summary = sentences
	} else {
		out.Summary = res.Paragraph
	}
	return out
}

func ToIndexResponse(res rag.IndexResult) api.IndexResponse {
	return api.IndexResponse{
		DocId:     res.DocId,
		Sentences: res.Sentences,
		Retriever: string(res.Retriever),
		Note:      res.Note,
	}
}

func ToCitations(hits []documentModel.Hit) []api.Citation {
	citations := make([]api.Citation, 0, len(hits))
	for _, h := range hits {
		citations = append(citations, api.Citation{I: h.Index, Score: h.Score, Text: h.Text})
	}
	return citations
}

func ToAskResponse(res rag.AnswerResult) api.AskResponse {
	return api.AskResponse{
		Answer:    res.Answer,
		Citations: ToCitations(res.Citations),
		Cached:    res.Cached,
	}
}

func ToSearchResponse(res rag.SearchResult) api.SearchResponse {
	return api.SearchResponse{
		DocId:     res.DocId,
		Retriever: string(res.Retriever),
		Hits:      ToCitations(res.Hits),
	}
}

func ToRiskResponse(docId string, clauses []documentModel.RiskClause) api.RiskResponse {
	out := api.RiskResponse{DocId: docId, Clauses: make([]api.RiskClause, 0, len(clauses))}
	for _, c := range clauses {
		out.Clauses = append(out.Clauses, api.RiskClause{I: c.Index, Text: c.Text, Risk: c.Risk})
	}
	return out
}

func ToDocumentInfo(doc documentModel.Document) api.DocumentInfo {
	info := api.DocumentInfo{
		DocId:     doc.Id,
		Title:     doc.Title,
		Chars:     utf8.RuneCountInString(doc.Text),
		Sentences: len(doc.Sentences),
		Chunks:    len(doc.Chunks),
		Indexed:   doc.Index != nil,
		CreatedAt: doc.CreatedAt,
	}
	if doc.Index != nil {
		info.Retriever = string(doc.Index.Method())
	}
	return info
}

func ToDocumentListResponse(docs []documentModel.Document) api.DocumentListResponse {
	out := api.DocumentListResponse{Documents: make([]api.DocumentInfo, 0, len(docs))}
	for _, d := range docs {
		out.Documents = append(out.Documents, ToDocumentInfo(d))
	}
	return out
}

func ToHistoryResponse(docId string, exchanges []documentModel.Exchange) api.HistoryResponse {
	out := api.HistoryResponse{DocId: docId, Exchanges: make([]api.Exchange, 0, len(exchanges))}
	for _, e := range exchanges {
		out.Exchanges = append(out.Exchanges, api.Exchange{Question: e.Question, Answer: e.Answer, AskedAt: e.AskedAt})
	}
	return out
}

func ToErrorResponse(id string, message string, code int) api.ErrorResponse {
	return api.ErrorResponse{
		Id: id,
		Error: api.OutgoingError{
			Code:    code,
			Message: message,
			// server side failures (model, vector store) are usually transient
			Retry: code >= 500,
		},
	}
}

func ToSoftError(message string) api.SoftError {
	return api.SoftError{Error: message}
}
