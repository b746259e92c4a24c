// Package resume turns uploaded resume files into plain text for the parser prompt.
package resume

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
)

// MaxChars is the longest resume text sent to the model and stored on the candidate.
const MaxChars = 50000

// TruncationNotice is appended to resumes cut at MaxChars.
const TruncationNotice = "\n\n[Resume truncated due to length. Please upload a shorter resume or plain text file.]"

// ExtractText returns the text content of a resume. Office and PDF documents go
// through docconv; anything else is read as UTF-8 text.
func ExtractText(filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt":
		res, err := docconv.Convert(bytes.NewReader(data), docconv.MimeTypeByExtension(filename), false)
		if err != nil {
			return "", fmt.Errorf("failed to parse document: %w", err)
		}
		return res.Body, nil
	default:
		if !utf8.Valid(data) {
			return strings.ToValidUTF8(string(data), ""), nil
		}
		return string(data), nil
	}
}

// Truncate caps text at MaxChars characters and appends TruncationNotice when it cuts.
func Truncate(text string) (string, bool) {
	if utf8.RuneCountInString(text) <= MaxChars {
		return text, false
	}
	runes := []rune(text)
	return string(runes[:MaxChars]) + TruncationNotice, true
}
