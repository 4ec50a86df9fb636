package services

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextPlain(t *testing.T) {
	content, err := NewDocumentParser().ExtractText("cv.TXT", []byte("Jane Doe\nGo developer"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo developer", content.Text)
	assert.Equal(t, "cv.TXT", content.FileName)
}

func TestExtractTextFailures(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		data     []byte
	}{
		{name: "unsupported", fileName: "cv.png", data: []byte("png")},
		{name: "empty text", fileName: "cv.txt", data: []byte("  \n ")},
		{name: "corrupt pdf", fileName: "cv.pdf", data: []byte("%PDF-1.4 this is not really a pdf")},
		{name: "empty pdf", fileName: "cv.pdf", data: nil},
		{name: "corrupt docx", fileName: "cv.docx", data: []byte("not a zip")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDocumentParser().ExtractText(tt.fileName, tt.data)
			var extractionErr *ExtractionError
			require.True(t, errors.As(err, &extractionErr), "got %v", err)
			assert.Equal(t, tt.fileName, extractionErr.FileName)
		})
	}
}

func TestIsSupportedFile(t *testing.T) {
	assert.True(t, IsSupportedFile("Resume.PDF"))
	assert.True(t, IsSupportedFile("resume.docx"))
	assert.True(t, IsSupportedFile("resume.txt"))
	assert.False(t, IsSupportedFile("resume.doc"))
	assert.False(t, IsSupportedFile("resume"))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a\nb", CleanText("  a \n\n   \n b  "))
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range map[string]string{
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractTextDocx(t *testing.T) {
	data := buildDocx(t, `<?xml version="1.0" encoding="UTF-8"?>`+
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`+
		`<w:p><w:r><w:t>R&amp;D at AT&amp;T &lt;5G&gt;</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Python</w:t><w:tab/><w:t>SQL</w:t></w:r></w:p>`+
		`</w:body></w:document>`)

	content, err := NewDocumentParser().ExtractText("cv.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "R&D at AT&T <5G>\nPython SQL", content.Text)
	assert.Equal(t, "cv.docx", content.FileName)
}

// buildPDF writes a one-page PDF showing text in Helvetica, with a correct
// cross-reference table.
func buildPDF(text string) []byte {
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractTextPDF(t *testing.T) {
	content, err := NewDocumentParser().ExtractText("cv.pdf", buildPDF("Jane Doe Go Developer"))
	require.NoError(t, err)
	assert.Contains(t, content.Text, "Jane Doe Go Developer")
	assert.Equal(t, 1, content.PageCount)
}
