package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/SscSPs/smart_accounting/internal/apperrors"
	"github.com/SscSPs/smart_accounting/internal/middleware"
)

// Tesseract runs `tesseract <image> stdout -l <lang>` over an uploaded image.
type Tesseract struct {
	command string
	lang    string
	runner  Runner
}

// Option configures Tesseract.
type Option func(*Tesseract)

// WithRunner replaces the command runner.
func WithRunner(r Runner) Option {
	return func(t *Tesseract) { t.runner = r }
}

// NewTesseract creates an extractor using command (usually "tesseract") and
// the language list lang (e.g. "ara+eng").
func NewTesseract(command, lang string, opts ...Option) *Tesseract {
	t := &Tesseract{command: command, lang: lang, runner: execRunner{}}
	for _, o := range opts {
		o(t)
	}
	return t
}

var allowedExt = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true, ".bmp": true, ".webp": true}

// ExtractText writes image to a temp file, runs tesseract over it and
// returns the normalised text. Any failure is an ErrExtraction.
func (t *Tesseract) ExtractText(ctx context.Context, image []byte, filename string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		ext = ".png"
	}
	tmp, err := os.CreateTemp("", "ocr-*"+ext)
	if err != nil {
		return "", fmt.Errorf("%w: temp file: %v", apperrors.ErrExtraction, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(image); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("%w: write image: %v", apperrors.ErrExtraction, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: close image: %v", apperrors.ErrExtraction, err)
	}

	args := []string{tmp.Name(), "stdout"}
	if t.lang != "" {
		args = append(args, "-l", t.lang)
	}
	stdout, stderr, err := t.runner.Run(ctx, t.command, logger, args...)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v: %s", apperrors.ErrExtraction, t.command, err, strings.TrimSpace(truncate(string(stderr), 512)))
	}

	text := Normalize(string(stdout))
	if text == "" {
		return "", fmt.Errorf("%w: no text recognised in %s", apperrors.ErrExtraction, filename)
	}
	return text, nil
}

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
	reBoxNoise   = regexp.MustCompile(`(?m)^\s*[_\-]{3,}\s*$`)
)

// Normalize collapses noisy whitespace and drops ruler lines. Line breaks
// are kept; runs of blank lines collapse to one.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reBoxNoise.ReplaceAllString(s, "")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
