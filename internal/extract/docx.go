package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// DOCXExtractor extracts plain text from Word documents.
// A .docx file is a ZIP archive; the text lives in word/document.xml
// as <w:t> runs grouped into <w:p> paragraphs.
type DOCXExtractor struct{}

// NewDOCXExtractor creates a new DOCX extractor
func NewDOCXExtractor() *DOCXExtractor {
	return &DOCXExtractor{}
}

// Extract returns paragraph-separated plain text
func (e *DOCXExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}

	var docFile *zip.File
	for _, file := range archive.File {
		if file.Name == "word/document.xml" {
			docFile = file
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("%w: word/document.xml not found", ErrCorruptFile)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	defer rc.Close()

	text, err := wordXMLText(rc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}

	return finishText(text)
}

// wordXMLText walks WordprocessingML, collecting text runs and
// separating paragraphs with blank lines
func wordXMLText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var sb strings.Builder
	var paragraph strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				paragraph.WriteString(" ")
			case "br":
				paragraph.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if strings.TrimSpace(paragraph.String()) != "" {
					sb.WriteString(paragraph.String())
					sb.WriteString("\n\n")
				}
				paragraph.Reset()
			}
		case xml.CharData:
			if inText {
				paragraph.Write(t)
			}
		}
	}

	// Flush a trailing unterminated paragraph
	if strings.TrimSpace(paragraph.String()) != "" {
		sb.WriteString(paragraph.String())
	}

	return sb.String(), nil
}

// SupportedFormats returns the formats this extractor supports
func (e *DOCXExtractor) SupportedFormats() []string {
	return []string{"docx"}
}
