package collection

import "reflect"

// View adapts an arbitrary backing value to indexed reads. It accepts a List
// or any Go slice or array; strings and byte slices are treated as scalars.
type View struct {
	source   any
	list     List
	rv       reflect.Value
	notifier Notifier
}

// NewView wraps source. ok is false when source is not a collection.
func NewView(source any) (*View, bool) {
	if v, isView := source.(*View); isView {
		return v, v != nil
	}

	if source == nil {
		return nil, false
	}

	view := &View{source: source}

	if n, isNotifier := source.(Notifier); isNotifier {
		view.notifier = n
	}

	if l, isList := source.(List); isList {
		view.list = l
		return view, true
	}

	rv := reflect.ValueOf(source)
	if !isSequence(rv) {
		return nil, false
	}

	view.rv = rv

	return view, true
}

// IsCollection reports whether value can back a nested level of the tree.
func IsCollection(value any) bool {
	switch value.(type) {
	case nil:
		return false
	case *View, List:
		return true
	}

	return isSequence(reflect.ValueOf(value))
}

func isSequence(rv reflect.Value) bool {
	for rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Array {
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice:
		return rv.Type().Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return true
	default:
		return false
	}
}

// Source returns the wrapped value.
func (v *View) Source() any {
	return v.source
}

// Count returns the current number of items.
func (v *View) Count() int {
	if v.list != nil {
		return v.list.Len()
	}

	return v.seq().Len()
}

// At returns the item at index i. Callers keep i within [0, Count()).
func (v *View) At(i int) any {
	if v.list != nil {
		return v.list.At(i)
	}

	return v.seq().Index(i).Interface()
}

// Observable reports whether the source reports structural edits.
func (v *View) Observable() bool {
	return v.notifier != nil
}

// Subscribe forwards to the source's Notifier. For sources that never change
// it returns a no-op unsubscribe.
func (v *View) Subscribe(handler ChangeHandler) func() {
	if v.notifier == nil {
		return func() {}
	}

	return v.notifier.Subscribe(handler)
}

func (v *View) seq() reflect.Value {
	rv := v.rv
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}

	return rv
}
