// Package writer persists generated units, one file per type.
package writer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// File is one output file, named relative to the output directory.
type File struct {
	Name    string
	Content string
}

// Options controls how files are written.
type Options struct {
	// Workers bounds concurrent writes; zero means runtime.NumCPU.
	Workers int
	Logger  *slog.Logger
}

// Writer writes files into a single output directory.
type Writer struct {
	dir     string
	workers int
	logger  *slog.Logger
}

// New creates a Writer for dir.
func New(dir string, opts Options) *Writer {
	w := &Writer{
		dir:     dir,
		workers: opts.Workers,
		logger:  opts.Logger,
	}
	if w.workers <= 0 {
		w.workers = runtime.NumCPU()
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	return w
}

// WriteAll creates the output directory and writes every file into it,
// returning the written paths in input order. When two files share a name
// the later content wins.
func (w *Writer) WriteAll(ctx context.Context, files []File) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	files = dedupe(files)
	paths := make([]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers)

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			path := filepath.Join(w.dir, file.Name)
			if err := os.WriteFile(path, []byte(file.Content), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			paths[i] = path

			w.logger.Debug("wrote unit",
				slog.String("path", path),
				slog.Int("bytes", len(file.Content)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// WriteStream prints files to out. Several files are separated by
// "==> name <==" headers; a single file is printed as is.
func WriteStream(out io.Writer, files []File) error {
	files = dedupe(files)
	for i, file := range files {
		if len(files) > 1 {
			if i > 0 {
				if _, err := fmt.Fprintln(out); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(out, "==> %s <==\n", file.Name); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(out, file.Content); err != nil {
			return err
		}
	}
	return nil
}

// dedupe keeps one entry per name at the position the name first appeared,
// holding the last content written under it.
func dedupe(files []File) []File {
	index := make(map[string]int, len(files))
	out := make([]File, 0, len(files))
	for _, file := range files {
		if i, ok := index[file.Name]; ok {
			out[i] = file
			continue
		}
		index[file.Name] = len(out)
		out = append(out, file)
	}
	return out
}
