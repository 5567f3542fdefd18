package adapter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
)

// PatchApplier applies RFC 6902 patches to a loaded document in place.
// Each operation becomes an insert, removal or replacement on the observable
// children list it targets, so selection models watching the document see
// the edit as it happens.
type PatchApplier interface {
	Apply(root *Node, patch []byte) error
}

// JSONPatchApplier supports the add, remove, replace and test operations.
type JSONPatchApplier struct {
	logger *slog.Logger
}

// NewJSONPatchApplier returns a PatchApplier that logs each operation.
func NewJSONPatchApplier(logger *slog.Logger) *JSONPatchApplier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &JSONPatchApplier{logger: logger}
}

// Apply runs every operation of patch against root in order. It stops at
// the first failing operation; earlier operations stay applied.
func (a *JSONPatchApplier) Apply(root *Node, patch []byte) error {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return fmt.Errorf("decode patch: %w", err)
	}

	for i, op := range ops {
		pointer, err := rawString(op, "path")
		if err != nil {
			return fmt.Errorf("patch op %d: %w", i, err)
		}

		a.logger.Debug("applying patch operation",
			slog.Int("op", i),
			slog.String("kind", op.Kind()),
			slog.String("path", pointer))

		switch op.Kind() {
		case "add":
			err = a.add(root, pointer, op)
		case "remove":
			err = a.remove(root, pointer)
		case "replace":
			err = a.replace(root, pointer, op)
		case "test":
			err = a.test(root, op)
		default:
			err = fmt.Errorf("%q: %w", op.Kind(), ErrUnsupportedPatchOp)
		}

		if err != nil {
			return fmt.Errorf("patch op %d (%s %s): %w", i, op.Kind(), pointer, err)
		}
	}

	return nil
}

func (a *JSONPatchApplier) add(root *Node, pointer string, op jsonpatch.Operation) error {
	parent, token, err := resolveParent(root, pointer)
	if err != nil {
		return err
	}

	value, err := opValue(op)
	if err != nil {
		return err
	}

	switch parent.Kind {
	case KindMap:
		node := buildNode(token, value)
		if i := parent.Lookup(token); i >= 0 {
			return parent.Children.Replace(i, node)
		}

		parent.Children.Append(node)

		return nil
	case KindSeq:
		node := buildNode("", value)
		if token == "-" {
			parent.Children.Append(node)
			return nil
		}

		index, err := seqIndex(parent, token, true)
		if err != nil {
			return err
		}

		return parent.Children.Insert(index, node)
	default:
		return ErrNotBranch
	}
}

func (a *JSONPatchApplier) remove(root *Node, pointer string) error {
	parent, index, err := resolveChild(root, pointer)
	if err != nil {
		return err
	}

	return parent.Children.RemoveAt(index, 1)
}

func (a *JSONPatchApplier) replace(root *Node, pointer string, op jsonpatch.Operation) error {
	parent, index, err := resolveChild(root, pointer)
	if err != nil {
		return err
	}

	value, err := opValue(op)
	if err != nil {
		return err
	}

	return parent.Children.Replace(index, buildNode(parent.Child(index).Key, value))
}

// test renders the document to JSON and lets the patch library evaluate the
// single test operation against it.
func (a *JSONPatchApplier) test(root *Node, op jsonpatch.Operation) error {
	doc, err := json.Marshal(root.Plain())
	if err != nil {
		return fmt.Errorf("render document: %w", err)
	}

	if _, err := (jsonpatch.Patch{op}).Apply(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrPatchTestFailed, err)
	}

	return nil
}

// resolveParent walks every pointer token but the last and returns the
// branch holding it together with the unescaped last token.
func resolveParent(root *Node, pointer string) (*Node, string, error) {
	tokens, err := splitPointer(pointer)
	if err != nil {
		return nil, "", err
	}

	if len(tokens) == 0 {
		return nil, "", fmt.Errorf("document root: %w", ErrPatchPath)
	}

	n := root

	for _, token := range tokens[:len(tokens)-1] {
		index, err := childIndex(n, token)
		if err != nil {
			return nil, "", err
		}

		n = n.Child(index)
	}

	if n.IsLeaf() {
		return nil, "", fmt.Errorf("%s: %w", pointer, ErrNotBranch)
	}

	return n, tokens[len(tokens)-1], nil
}

// resolveChild resolves pointer to an existing entry.
func resolveChild(root *Node, pointer string) (*Node, int, error) {
	parent, token, err := resolveParent(root, pointer)
	if err != nil {
		return nil, 0, err
	}

	index, err := childIndex(parent, token)
	if err != nil {
		return nil, 0, err
	}

	return parent, index, nil
}

func childIndex(n *Node, token string) (int, error) {
	switch n.Kind {
	case KindMap:
		if i := n.Lookup(token); i >= 0 {
			return i, nil
		}

		return 0, fmt.Errorf("key %q: %w", token, ErrPatchPath)
	case KindSeq:
		return seqIndex(n, token, false)
	default:
		return 0, fmt.Errorf("token %q under a scalar: %w", token, ErrPatchPath)
	}
}

// seqIndex parses a sequence token. With insert the index may equal the
// length.
func seqIndex(n *Node, token string, insert bool) (int, error) {
	index, err := strconv.Atoi(token)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("index %q: %w", token, ErrPatchPath)
	}

	limit := n.Len()
	if insert {
		limit++
	}

	if index >= limit {
		return 0, fmt.Errorf("index %d of %d: %w", index, n.Len(), ErrPatchPath)
	}

	return index, nil
}

func splitPointer(pointer string) ([]string, error) {
	if pointer == "" {
		return nil, nil
	}

	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("pointer %q: %w", pointer, ErrPatchPath)
	}

	tokens := strings.Split(pointer[1:], "/")
	for i, t := range tokens {
		tokens[i] = strings.ReplaceAll(strings.ReplaceAll(t, "~1", "/"), "~0", "~")
	}

	return tokens, nil
}

func rawString(op jsonpatch.Operation, field string) (string, error) {
	raw, ok := op[field]
	if !ok || raw == nil {
		return "", fmt.Errorf("missing %q", field)
	}

	var s string
	if err := json.Unmarshal(*raw, &s); err != nil {
		return "", fmt.Errorf("field %q: %w", field, err)
	}

	return s, nil
}

// opValue decodes the value of op, keeping object keys in order.
func opValue(op jsonpatch.Operation) (any, error) {
	raw, ok := op["value"]
	if !ok || raw == nil {
		return nil, fmt.Errorf("missing %q", "value")
	}

	value, err := decodeValue(*raw)
	if err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}

	return value, nil
}
