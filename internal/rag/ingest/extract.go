package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/LegalDocAPI/internal/config"
	"github.com/akolanti/LegalDocAPI/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
	"golang.org/x/net/html"
)

type DocType string

const (
	PDF    DocType = "PDF"
	HTML   DocType = "HTML"
	OFFICE DocType = "OFFICE"
	TEXT   DocType = "TEXT"
)

var logger = logger_i.NewLogger("Extraction")

func GetDocType(filename string) DocType {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".html", ".htm":
		return HTML
	case ".docx", ".odt", ".rtf":
		return OFFICE
	default:
		return TEXT
	}
}

// ExtractText turns raw upload bytes into text. It never fails: unreadable content yields
// whatever could be recovered, possibly nothing.
func ExtractText(filename string, data []byte) string {
	docType := GetDocType(filename)
	log := logger.With("filename", filename, "type", docType)

	var (
		text string
		err  error
	)
	switch docType {
	case PDF:
		text, err = extractPDF(data)
	case HTML:
		text, err = extractHTML(data)
	case OFFICE:
		text, err = extractOffice(filename, data)
	default:
		text = decodePlain(data)
	}
	if err != nil {
		log.Warn("extraction degraded", "error", err, "recovered_chars", len(text))
	}
	return text
}

func decodePlain(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}

func extractPDF(data []byte) (text string, err error) {
	defer func() {
		// the pdf reader panics on some malformed xref tables
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	f, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	numPages := f.NumPage()
	pages := make([]string, 0, numPages)
	var pageErrs []error
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		content, err := protectExtract(page)
		if err != nil {
			pageErrs = append(pageErrs, fmt.Errorf("page %d: %w", i, err))
			pages = append(pages, "")
			continue
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n"), errors.Join(pageErrs...)
}

func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{"", fmt.Errorf("page panic: %v", r)}
			}
		}()
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(config.PdfPageExtractTimout):
		return "", errors.New("timeout")
	}
}

// extractHTML joins every text node with a single space. Script and style bodies are skipped.
func extractHTML(data []byte) (string, error) {
	z := html.NewTokenizer(bytes.NewReader(data))
	var parts []string
	skipDepth := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				return strings.Join(parts, " "), err
			}
			return strings.Join(parts, " "), nil
		case html.StartTagToken:
			if isSkippedTag(z) {
				skipDepth++
			}
		case html.EndTagToken:
			if isSkippedTag(z) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				parts = append(parts, string(z.Text()))
			}
		}
	}
}

func isSkippedTag(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style", "noscript":
		return true
	}
	return false
}

// cat only reads from disk, so the upload is spooled to a temporary file first.
func extractOffice(filename string, data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "legal-upload-*"+strings.ToLower(filepath.Ext(filename)))
	if err != nil {
		return "", fmt.Errorf("spool upload: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("spool upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("spool upload: %w", err)
	}

	text, err := cat.File(tmp.Name())
	if err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", filepath.Ext(filename), err)
	}
	return text, nil
}
