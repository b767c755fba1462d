package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// slideNamePattern matches slide part names inside a .pptx archive
var slideNamePattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// PPTXExtractor extracts plain text from PowerPoint presentations.
// Each slide is a DrawingML part with text in <a:t> runs.
type PPTXExtractor struct{}

// NewPPTXExtractor creates a new PPTX extractor
func NewPPTXExtractor() *PPTXExtractor {
	return &PPTXExtractor{}
}

// Extract returns the deck's text, one block per slide in deck order
func (e *PPTXExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}

	type slidePart struct {
		number int
		file   *zip.File
	}

	var slides []slidePart
	for _, file := range archive.File {
		m := slideNamePattern.FindStringSubmatch(file.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slidePart{number: n, file: file})
	}

	if len(slides) == 0 {
		return "", fmt.Errorf("%w: no slides found", ErrCorruptFile)
	}

	// Part names are lexically ordered in the archive; deck order is numeric
	sort.Slice(slides, func(i, j int) bool { return slides[i].number < slides[j].number })

	var sb strings.Builder
	for _, slide := range slides {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		rc, err := slide.file.Open()
		if err != nil {
			continue
		}
		text, err := slideXMLText(rc)
		rc.Close()
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}

		fmt.Fprintf(&sb, "Slide %d\n%s\n\n", slide.number, strings.TrimSpace(text))
	}

	return finishText(sb.String())
}

// slideXMLText collects the <a:t> text runs of one slide, one line
// per run
func slideXMLText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var sb strings.Builder
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
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return sb.String(), nil
}

// SupportedFormats returns the formats this extractor supports
func (e *PPTXExtractor) SupportedFormats() []string {
	return []string{"pptx"}
}
