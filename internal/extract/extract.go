package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	mimeText = "text/plain"
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrUnsupported is returned for uploads that are not a text, PDF or DOCX transcript.
var ErrUnsupported = errors.New("unsupported transcript format")

// TranscriptText extracts plain text from an uploaded transcript. The
// declared mime type is advisory; the file extension and content sniffing
// decide when it is missing or generic.
func TranscriptText(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	normalized := normalizeMimeType(mimeType, fileName, data)
	var (
		text string
		err  error
	)
	switch normalized {
	case mimeText:
		text, err = extractPlain(data)
	case mimePDF:
		text, err = extractPDF(data)
	case mimeDOCX:
		text, err = extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, normalized)
	}
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", normalized, err)
	}
	return strings.TrimSpace(text), nil
}

func extractPlain(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("text transcript is not valid UTF-8")
	}
	return string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))), nil
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return paragraphsFromDocxXML(raw)
}

// paragraphsFromDocxXML keeps character data and turns paragraph and break
// ends into newlines, so speaker turns stay on their own lines.
func paragraphsFromDocxXML(raw []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteString("\n")
			}
		}
	}
	return buf.String(), nil
}

func normalizeMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch clean {
	case mimeText, mimePDF, mimeDOCX:
		return clean
	case "", "application/octet-stream", "application/zip":
	default:
		if strings.HasPrefix(clean, "text/") {
			return mimeText
		}
		return clean
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt", ".text", ".md", ".vtt", ".srt":
		return mimeText
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDOCX
	}

	if clean == "application/zip" && isDOCX(data) {
		return mimeDOCX
	}
	sniffed := strings.Split(http.DetectContentType(data), ";")[0]
	if strings.HasPrefix(sniffed, "text/") {
		return mimeText
	}
	if sniffed == mimePDF {
		return mimePDF
	}
	if clean != "" {
		return clean
	}
	return sniffed
}

func isDOCX(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return true
		}
	}
	return false
}
