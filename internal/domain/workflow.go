// Package domain wires document loading, editing and selection into the
// commands the CLI exposes.
package domain

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mouse-blink/treesel/internal/adapter"
	"github.com/mouse-blink/treesel/internal/controller"
	"github.com/mouse-blink/treesel/internal/model"
	"github.com/mouse-blink/treesel/internal/selection"
)

const recursiveSuffix = "/..."

// ErrInvalidSelection indicates a selection argument that does not address
// any item of the loaded document.
var ErrInvalidSelection = errors.New("invalid selection")

// ListArgs names the document to load and the patches to apply to it.
type ListArgs struct {
	// Source is a YAML or JSON file, or a directory of them. A trailing
	// "/..." includes subdirectories.
	Source string
	// Patches are RFC 6902 patch files applied in order after loading.
	Patches []string
}

// SelectArgs describes a selection to build over a loaded document.
type SelectArgs struct {
	ListArgs

	// Paths are index paths such as "1.0" selected one by one.
	Paths []string
	// Ranges are "start:end" index path pairs selected inclusively.
	Ranges []string
	// All selects every item at every level.
	All bool
	// Match is an expression; every node it accepts is selected.
	Match string
	// Single restricts the model to one selected item.
	Single bool
	// Interactive opens the browser before printing the result.
	Interactive bool
	// ShowItems prints each selected item next to its path.
	ShowItems bool
}

// Workflow defines the operations behind the CLI commands.
type Workflow interface {
	List(args ListArgs) error
	Select(args SelectArgs) error
}

type workflow struct {
	docs    adapter.DocumentLoader
	dirs    adapter.DirLoader
	patcher adapter.PatchApplier
	ui      controller.UI
	logger  *slog.Logger
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	docs adapter.DocumentLoader,
	dirs adapter.DirLoader,
	patcher adapter.PatchApplier,
	ui controller.UI,
	logger *slog.Logger,
) Workflow {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &workflow{
		docs:    docs,
		dirs:    dirs,
		patcher: patcher,
		ui:      ui,
		logger:  logger,
	}
}

// session is a loaded document with a selection model bound to it.
type session struct {
	doc    *adapter.Node
	sel    *selection.SelectionModel
	unbind func()
}

func (s *session) close() {
	s.unbind()
	s.sel.Dispose()
}

// List prints the document tree.
func (w *workflow) List(args ListArgs) error {
	s, err := w.open(args.Source, false)
	if err != nil {
		return err
	}
	defer s.close()

	if err := w.applyPatches(s.doc, args.Patches); err != nil {
		return err
	}

	if err := w.ui.Start(controller.WithListMode()); err != nil {
		return fmt.Errorf("start UI: %w", err)
	}
	defer w.ui.Close()

	return w.ui.DisplayTree(s.doc, s.sel)
}

// Select builds a selection, applies patches on top of it so the selection
// follows the edits, and prints the selected paths.
func (w *workflow) Select(args SelectArgs) error {
	s, err := w.open(args.Source, args.Single)
	if err != nil {
		return err
	}
	defer s.close()

	if err := w.applySelection(s, args); err != nil {
		return err
	}

	if err := w.applyPatches(s.doc, args.Patches); err != nil {
		return err
	}

	if err := w.ui.Start(controller.WithSelectMode(), controller.WithShowItems(args.ShowItems)); err != nil {
		return fmt.Errorf("start UI: %w", err)
	}
	defer w.ui.Close()

	if args.Interactive {
		if err := w.ui.Browse(s.doc, s.sel); err != nil {
			return err
		}
	}

	return w.ui.DisplaySelection(s.sel)
}

func (w *workflow) open(source string, single bool) (*session, error) {
	doc, err := w.load(source)
	if err != nil {
		return nil, err
	}

	sel := selection.New(selection.WithLogger(w.logger), selection.WithSingleSelect(single))

	unbind, err := adapter.Bind(sel, doc)
	if err != nil {
		sel.Dispose()
		return nil, err
	}

	return &session{doc: doc, sel: sel, unbind: unbind}, nil
}

// load reads a single document, or a whole directory when source names one.
func (w *workflow) load(source string) (*adapter.Node, error) {
	if source == "" {
		source = "."
	}

	if strings.HasSuffix(source, recursiveSuffix) {
		return w.dirs.Load(source)
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("source path error: %w", err)
	}

	if info.IsDir() {
		return w.dirs.Load(source)
	}

	return w.docs.Load(source)
}

func (w *workflow) applySelection(s *session, args SelectArgs) error {
	if args.All {
		s.sel.SelectAll()
	}

	for _, raw := range args.Paths {
		path, err := model.ParseIndexPath(raw)
		if err != nil {
			return err
		}

		if path.IsRoot() || !s.sel.SelectAt(path) {
			return fmt.Errorf("path %q: %w", raw, ErrInvalidSelection)
		}
	}

	for _, raw := range args.Ranges {
		start, end, err := parseRange(raw)
		if err != nil {
			return err
		}

		if !s.sel.SelectRange(start, end) {
			return fmt.Errorf("range %q: %w", raw, ErrInvalidSelection)
		}
	}

	if args.Match != "" {
		matcher, err := adapter.NewMatcher(args.Match)
		if err != nil {
			return err
		}

		paths, err := matcher.Find(s.doc)
		if err != nil {
			return err
		}

		w.logger.Debug("match expression evaluated",
			slog.String("expression", matcher.String()),
			slog.Int("matches", len(paths)))

		for _, path := range paths {
			s.sel.SelectAt(path)
		}
	}

	return nil
}

func (w *workflow) applyPatches(doc *adapter.Node, patches []string) error {
	for _, path := range patches {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read patch: %w", err)
		}

		if err := w.patcher.Apply(doc, data); err != nil {
			return fmt.Errorf("apply %s: %w", path, err)
		}

		w.logger.Info("patch applied", slog.String("patch", path))
	}

	return nil
}

// parseRange splits "start:end" into two index paths.
func parseRange(raw string) (model.IndexPath, model.IndexPath, error) {
	left, right, ok := strings.Cut(raw, ":")
	if !ok {
		return model.IndexPath{}, model.IndexPath{}, fmt.Errorf("range %q: want start:end: %w", raw, ErrInvalidSelection)
	}

	start, err := model.ParseIndexPath(left)
	if err != nil {
		return model.IndexPath{}, model.IndexPath{}, err
	}

	end, err := model.ParseIndexPath(right)
	if err != nil {
		return model.IndexPath{}, model.IndexPath{}, err
	}

	if start.IsRoot() || end.IsRoot() {
		return model.IndexPath{}, model.IndexPath{}, fmt.Errorf("range %q: %w", raw, ErrInvalidSelection)
	}

	return start, end, nil
}
