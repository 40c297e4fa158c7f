package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/hybridzdynamics/portfolio/internal/content"
)

// ExportOptions controls a static build.
type ExportOptions struct {
	Dir       string
	Endpoint  string
	ImagesDir string
	BaseURL   string
	Now       time.Time
}

// Export writes the page and its assets to opts.Dir. In the exported page the
// contact form posts straight to the form endpoint from the browser.
// It returns the number of files written.
func Export(site *content.Site, opts ExportOptions) (int, error) {
	if opts.Dir == "" {
		return 0, errors.New("export directory is required")
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return 0, err
	}

	page := NewPage(site, ContactView{Action: opts.Endpoint, Static: true}, opts.Now)
	page.BaseURL = opts.BaseURL
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "index.html", page); err != nil {
		return 0, fmt.Errorf("rendering index: %w", err)
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", opts.Dir, err)
	}
	if err := os.WriteFile(filepath.Join(opts.Dir, "index.html"), buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("writing index: %w", err)
	}
	written := 1

	n, err := copyTree(StaticFS(), filepath.Join(opts.Dir, "static"))
	if err != nil {
		return written, fmt.Errorf("copying static assets: %w", err)
	}
	written += n

	if opts.ImagesDir != "" {
		info, err := os.Stat(opts.ImagesDir)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return written, fmt.Errorf("reading images dir: %w", err)
		case info.IsDir():
			n, err := copyTree(os.DirFS(opts.ImagesDir), filepath.Join(opts.Dir, "images"))
			if err != nil {
				return written, fmt.Errorf("copying images: %w", err)
			}
			written += n
		}
	}

	return written, nil
}

func copyTree(src fs.FS, dst string) (int, error) {
	count := 0
	err := fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		in, err := src.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := os.Create(target)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			return err
		}
		count++
		return out.Close()
	})
	return count, err
}
