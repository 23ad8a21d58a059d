// Package fs provides file-based storage and retrieval of articles.
package fs

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/readable"
	"gopkg.in/yaml.v3"
)

// SourceToPath converts an article source to a relative Markdown path.
// URLs map to host/path, e.g. https://example.com/blog/post becomes
// example.com/blog/post.md. Local files map to their base name.
func SourceToPath(source string) (string, error) {
	u, err := url.Parse(source)
	if err != nil {
		return "", readable.Errorf(readable.EINVALID, "invalid source %q: %v", source, err)
	}

	if u.Host == "" {
		name := filepath.Base(u.Path)
		if name == "." || name == "/" || name == "" {
			return "", readable.Errorf(readable.EINVALID, "invalid source %q", source)
		}
		return strings.TrimSuffix(name, filepath.Ext(name)) + ".md", nil
	}

	p := strings.TrimPrefix(path.Clean("/"+u.Path), "/")

	// Root or trailing slash → index.md
	if p == "" {
		return path.Join(u.Host, "index.md"), nil
	}
	if strings.HasSuffix(u.Path, "/") {
		return path.Join(u.Host, p, "index.md"), nil
	}

	p = strings.TrimSuffix(p, path.Ext(p))
	return path.Join(u.Host, p+".md"), nil
}

// FrontMatter is the YAML header of a stored article.
type FrontMatter struct {
	Source    string    `yaml:"source"`
	Title     string    `yaml:"title"`
	Byline    string    `yaml:"byline,omitempty"`
	Site      string    `yaml:"site,omitempty"`
	Excerpt   string    `yaml:"excerpt,omitempty"`
	Image     string    `yaml:"image,omitempty"`
	Hash      string    `yaml:"hash,omitempty"`
	Extracted time.Time `yaml:"extracted"`
}

// FormatArticle formats a record as Markdown with YAML front matter.
func FormatArticle(rec *readable.ArticleRecord) (string, error) {
	header, err := yaml.Marshal(FrontMatter{
		Source:    rec.SourceURL,
		Title:     rec.Title,
		Byline:    rec.Byline,
		Site:      rec.SiteName,
		Excerpt:   rec.Excerpt,
		Image:     rec.Image,
		Hash:      rec.ContentHash,
		Extracted: rec.ExtractedAt.UTC(),
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(rec.Content)
	return b.String(), nil
}

// ParseArticle splits a file written by FormatArticle into its front
// matter and Markdown body.
func ParseArticle(data []byte) (FrontMatter, string, error) {
	var fm FrontMatter
	rest, ok := bytes.CutPrefix(data, []byte("---\n"))
	if !ok {
		return fm, "", readable.Errorf(readable.EPARSE, "missing front matter")
	}
	header, body, ok := bytes.Cut(rest, []byte("\n---\n"))
	if !ok {
		return fm, "", readable.Errorf(readable.EPARSE, "unterminated front matter")
	}
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return fm, "", readable.Errorf(readable.EPARSE, "invalid front matter: %v", err)
	}
	return fm, strings.TrimPrefix(string(body), "\n"), nil
}

// Ensure Writer implements readable.ArticleWriter at compile time.
var _ readable.ArticleWriter = (*Writer)(nil)

// Writer writes articles as Markdown files to a directory.
type Writer struct {
	baseDir string
	now     func() time.Time
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir, now: time.Now}
}

// CreateArticle writes a record to disk as a Markdown file. The file is
// written to a temporary name first and renamed into place.
func (w *Writer) CreateArticle(ctx context.Context, rec *readable.ArticleRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if rec.ExtractedAt.IsZero() {
		rec.ExtractedAt = w.now()
	}

	relPath, err := SourceToPath(rec.SourceURL)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))

	// Create parent directories
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	content, err := FormatArticle(rec)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".article-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), fullPath)
}
