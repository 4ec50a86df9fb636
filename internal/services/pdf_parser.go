package services

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// TextExtractor turns uploaded document bytes into best-effort plain text.
type TextExtractor interface {
	ExtractText(fileName string, data []byte) (*DocumentContent, error)
}

type DocumentContent struct {
	Text      string
	PageCount int
	FileName  string
}

var supportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

// IsSupportedFile reports whether the extractor can read fileName.
func IsSupportedFile(fileName string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(fileName))]
}

type documentParser struct{}

func NewDocumentParser() TextExtractor {
	return &documentParser{}
}

func (p *documentParser) ExtractText(fileName string, data []byte) (*DocumentContent, error) {
	var (
		content *DocumentContent
		err     error
	)

	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".pdf":
		content, err = extractPDF(data)
	case ".docx":
		content, err = extractDocx(data)
	case ".txt":
		content = &DocumentContent{Text: string(data), PageCount: 1}
	default:
		err = fmt.Errorf("unsupported file type: %s", ext)
	}
	if err != nil {
		return nil, &ExtractionError{FileName: fileName, Err: err}
	}

	if strings.TrimSpace(content.Text) == "" {
		return nil, &ExtractionError{FileName: fileName, Err: fmt.Errorf("no text content found in document")}
	}

	content.FileName = fileName
	return content, nil
}

func extractPDF(data []byte) (content *DocumentContent, err error) {
	// The pdf reader panics on some corrupt cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			content, err = nil, fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Keep whatever the other pages yield
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return &DocumentContent{
		Text:      textBuilder.String(),
		PageCount: totalPage,
	}, nil
}

var (
	xmlTag     = regexp.MustCompile(`<[^>]+>`)
	docxBreaks = strings.NewReplacer("</w:p>", "\n", "<w:br/>", "\n", "<w:tab/>", " ")
)

func extractDocx(data []byte) (*DocumentContent, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	raw := docxBreaks.Replace(doc.Editable().GetContent())
	text := html.UnescapeString(xmlTag.ReplaceAllString(raw, ""))

	return &DocumentContent{Text: CleanText(text), PageCount: 1}, nil
}

// ReadAll reads r fully, refusing inputs larger than limit bytes.
func ReadAll(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, &InputError{Msg: fmt.Sprintf("file too large. Max size: %d bytes", limit)}
	}
	return data, nil
}

// CleanText drops blank lines and surrounding whitespace.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
