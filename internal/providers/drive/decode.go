package drive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gabriel-vasile/mimetype"
	"github.com/microcosm-cc/bluemonday"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// MaxDownloadSize limits raw recipe downloads to 10MB
const MaxDownloadSize = 10 * 1024 * 1024

var (
	ErrTooLarge        = errors.New("recipe file too large")
	ErrUnsupportedType = errors.New("recipe file is not text")
)

// blockSelector lists elements that end a line when flattened to text
const blockSelector = "p, div, li, tr, h1, h2, h3, h4, h5, h6, pre, blockquote"

// Decoder turns downloaded recipe bytes into plain UTF-8 text
type Decoder struct {
	sanitizer *bluemonday.Policy
}

// NewDecoder creates a decoder with the UGC sanitizer policy
func NewDecoder() *Decoder {
	return &Decoder{
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Decode sniffs the content type and converts text or HTML to plain text
func (d *Decoder) Decode(data []byte) (string, error) {
	if len(data) > MaxDownloadSize {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}

	mtype := mimetype.Detect(data)
	switch {
	case mtype.Is("text/html"):
		return d.htmlToText(ToUTF8(data))
	case isText(mtype):
		return ToUTF8(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
	}
}

func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// DetectCharset detects the charset of non-UTF-8 bytes
func DetectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// ToUTF8 transcodes data to UTF-8 when it is not already valid UTF-8
func ToUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	reader, err := charset.NewReaderLabel(DetectCharset(data), bytes.NewReader(data))
	if err != nil {
		return strings.ToValidUTF8(string(data), "")
	}
	out, err := io.ReadAll(reader)
	if err != nil {
		return strings.ToValidUTF8(string(data), "")
	}
	return string(out)
}

// htmlToText sanitizes markup and flattens it to one line per block
func (d *Decoder) htmlToText(markup string) (string, error) {
	clean := d.sanitizer.Sanitize(markup)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(clean))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockSelector).AppendHtml("\n")

	lines := strings.Split(doc.Text(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n"), nil
}
