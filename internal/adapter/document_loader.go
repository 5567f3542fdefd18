package adapter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// DocumentLoader reads YAML or JSON documents into Node trees. Mapping keys
// keep their document order.
type DocumentLoader interface {
	// Load reads and parses the file at path.
	Load(path string) (*Node, error)

	// Parse builds a tree from raw document bytes. name becomes the root key.
	Parse(name string, data []byte) (*Node, error)
}

// LocalDocumentLoader loads documents from the local filesystem.
type LocalDocumentLoader struct {
	logger *slog.Logger
}

// NewLocalDocumentLoader returns a loader that logs through logger.
func NewLocalDocumentLoader(logger *slog.Logger) *LocalDocumentLoader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &LocalDocumentLoader{logger: logger}
}

// IsDocument reports whether path has an extension the loader reads.
func IsDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

// Load reads and parses the file at path.
func (l *LocalDocumentLoader) Load(path string) (*Node, error) {
	if !IsDocument(path) {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	root, err := l.Parse(filepath.Base(path), data)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("document loaded",
		slog.String("path", path),
		slog.String("kind", root.Kind.String()),
		slog.Int("entries", root.Len()))

	return root, nil
}

// Parse builds a tree from raw document bytes.
func (l *LocalDocumentLoader) Parse(name string, data []byte) (*Node, error) {
	value, err := decodeValue(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	return buildNode(name, value), nil
}

func decodeValue(data []byte) (any, error) {
	var value any

	if err := yaml.UnmarshalWithOptions(data, &value, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}

	return value, nil
}

func buildNode(key string, value any) *Node {
	switch v := value.(type) {
	case yaml.MapSlice:
		children := make([]*Node, 0, len(v))
		for _, item := range v {
			children = append(children, buildNode(fmt.Sprint(item.Key), item.Value))
		}

		return NewBranch(key, KindMap, children...)
	case []any:
		children := make([]*Node, 0, len(v))
		for _, item := range v {
			children = append(children, buildNode("", item))
		}

		return NewBranch(key, KindSeq, children...)
	default:
		return NewLeaf(key, v)
	}
}
