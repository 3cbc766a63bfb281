package ingest

import (
	"time"

	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/akolanti/LegalDocAPI/internal/domain/documentModel"
)

// PrepareDocument extracts, cleans and segments an upload into a new unindexed record.
func PrepareDocument(id string, filename string, data []byte, now time.Time) documentModel.Document {
	text := CleanText(ExtractText(filename, data))
	return documentModel.Document{
		Id:        id,
		Title:     filename,
		Text:      text,
		Sentences: SplitSentences(text),
		Chunks:    ChunkByWords(text, config.UploadChunkWords),
		CreatedAt: now,
	}
}
