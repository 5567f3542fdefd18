package adapter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DirLoader turns a directory of documents into one tree whose root maps
// each document's relative path to its content.
type DirLoader interface {
	// Load reads every document under root. A trailing "/..." descends into
	// subdirectories; otherwise only the top level is read.
	Load(root string) (*Node, error)
}

// LocalDirLoader parses documents concurrently with a bounded worker count.
type LocalDirLoader struct {
	docs    DocumentLoader
	workers int
	logger  *slog.Logger
}

// NewLocalDirLoader returns a loader that parses at most workers files at a
// time.
func NewLocalDirLoader(docs DocumentLoader, workers int, logger *slog.Logger) *LocalDirLoader {
	if workers <= 0 {
		workers = 1
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &LocalDirLoader{docs: docs, workers: workers, logger: logger}
}

// Load reads every document under root.
func (l *LocalDirLoader) Load(root string) (*Node, error) {
	dir, recursive, err := normalizeRootPath(root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	files, err := l.collect(dir, recursive)
	if err != nil {
		return nil, err
	}

	nodes := make([]*Node, len(files))

	var g errgroup.Group
	g.SetLimit(l.workers)

	for i, file := range files {
		g.Go(func() error {
			doc, err := l.docs.Load(file)
			if err != nil {
				return err
			}

			rel, err := filepath.Rel(dir, file)
			if err != nil {
				return err
			}

			doc.Key = filepath.ToSlash(rel)
			nodes[i] = doc

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.Info("directory loaded",
		slog.String("root", dir),
		slog.Bool("recursive", recursive),
		slog.Int("documents", len(nodes)))

	return NewBranch(filepath.Base(dir), KindMap, nodes...), nil
}

// collect lists document files under dir in lexical order.
func (l *LocalDirLoader) collect(dir string, recursive bool) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path == dir {
				return nil
			}

			if !recursive || strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if IsDocument(path) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)

	return files, nil
}

func normalizeRootPath(root string) (string, bool, error) {
	dir, recursive := parseRootPath(root)

	if strings.HasPrefix(dir, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(dir, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		dir = filepath.Join(home, suffix)
	}

	if dir == "" {
		dir = "."
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(root string) (string, bool) {
	if root == "..." {
		return ".", true
	}

	if trimmed, ok := strings.CutSuffix(root, "/..."); ok {
		return trimmed, true
	}

	return root, false
}
