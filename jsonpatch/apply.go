// Copyright 2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package jsonpatch

import (
	"github.com/diffeo/go-bookpatch/jsonpointer"
	"github.com/diffeo/go-bookpatch/jsonvalue"
	"github.com/diffeo/go-bookpatch/patch"
)

// Apply runs every operation in doc, in order, starting from target.
// Each operation sees the result of the one before it.
//
// If any operation fails, Apply returns target unchanged along with
// a patch.ErrOperation naming the failed operation; none of the
// earlier operations' effects are visible.  The document is
// validated before anything runs, so a malformed operation late in
// the document is reported without running the earlier ones.
func Apply(target jsonvalue.Value, doc Document) (jsonvalue.Value, error) {
	if err := doc.Validate(); err != nil {
		return target, err
	}
	working := target
	for i, op := range doc {
		next, err := op.apply(working)
		if err != nil {
			return target, patch.ErrOperation{Index: i, Op: string(op.Op), Err: err}
		}
		working = next
	}
	return working, nil
}

// ApplyBytes parses a target document and a patch document and
// applies one to the other.
func ApplyBytes(target, doc []byte) ([]byte, error) {
	v, err := jsonvalue.Parse(target)
	if err != nil {
		return nil, err
	}
	d, err := DecodeBytes(doc)
	if err != nil {
		return nil, err
	}
	result, err := Apply(v, d)
	if err != nil {
		return nil, err
	}
	return result.MarshalJSON()
}

func (op Operation) apply(doc jsonvalue.Value) (jsonvalue.Value, error) {
	switch op.Op {
	case OpAdd:
		return add(doc, op.Path, *op.Value)
	case OpRemove:
		return remove(doc, op.Path)
	case OpReplace:
		return replace(doc, op.Path, *op.Value)
	case OpMove:
		return move(doc, op.From, op.Path)
	case OpCopy:
		value, err := jsonpointer.Resolve(doc, op.From)
		if err != nil {
			return doc, err
		}
		return add(doc, op.Path, value)
	case OpTest:
		return test(doc, op.Path, *op.Value)
	}
	return doc, op.Validate()
}

// edit rebuilds doc with the container at parent replaced by the
// result of fn.  Only the values along parent are copied; everything
// else is shared with doc.  path is the full pointer of the
// operation, used in errors.
func edit(
	doc jsonvalue.Value,
	path, parent jsonpointer.Pointer,
	fn func(jsonvalue.Value) (jsonvalue.Value, error),
) (jsonvalue.Value, error) {
	if len(parent) == 0 {
		return fn(doc)
	}
	token := parent[0]
	child, err := jsonpointer.Child(doc, path, token)
	if err != nil {
		return doc, err
	}
	child, err = edit(child, path, parent[1:], fn)
	if err != nil {
		return doc, err
	}
	if doc.Kind() == jsonvalue.ObjectKind {
		doc, _ = doc.Set(token, child)
		return doc, nil
	}
	// Child succeeded, so this is a valid in-range index.
	i, _ := jsonpointer.ArrayIndex(path, token, doc.Len())
	doc, _ = doc.SetIndex(i, child)
	return doc, nil
}

func notFound(path jsonpointer.Pointer) error {
	return patch.ErrPointerNotFound{Pointer: path.String()}
}

func add(doc jsonvalue.Value, path jsonpointer.Pointer, value jsonvalue.Value) (jsonvalue.Value, error) {
	if path.IsRoot() {
		return value, nil
	}
	parent, last, _ := path.Parent()
	return edit(doc, path, parent, func(container jsonvalue.Value) (jsonvalue.Value, error) {
		switch container.Kind() {
		case jsonvalue.ObjectKind:
			result, _ := container.Set(last, value)
			return result, nil
		case jsonvalue.ArrayKind:
			i, err := jsonpointer.ArrayIndex(path, last, container.Len())
			if err != nil {
				return container, err
			}
			result, _ := container.InsertAt(i, value)
			return result, nil
		}
		return container, notFound(path)
	})
}

func remove(doc jsonvalue.Value, path jsonpointer.Pointer) (jsonvalue.Value, error) {
	if path.IsRoot() {
		return doc, patch.ErrInvalidOperation{
			Op:     string(OpRemove),
			Reason: "cannot remove the document root",
		}
	}
	parent, last, _ := path.Parent()
	return edit(doc, path, parent, func(container jsonvalue.Value) (jsonvalue.Value, error) {
		switch container.Kind() {
		case jsonvalue.ObjectKind:
			if result, ok := container.Delete(last); ok {
				return result, nil
			}
		case jsonvalue.ArrayKind:
			i, err := jsonpointer.ArrayIndex(path, last, container.Len())
			if err != nil {
				return container, err
			}
			if result, ok := container.RemoveAt(i); ok {
				return result, nil
			}
		}
		return container, notFound(path)
	})
}

func replace(doc jsonvalue.Value, path jsonpointer.Pointer, value jsonvalue.Value) (jsonvalue.Value, error) {
	if path.IsRoot() {
		return value, nil
	}
	parent, last, _ := path.Parent()
	return edit(doc, path, parent, func(container jsonvalue.Value) (jsonvalue.Value, error) {
		switch container.Kind() {
		case jsonvalue.ObjectKind:
			if container.Has(last) {
				result, _ := container.Set(last, value)
				return result, nil
			}
		case jsonvalue.ArrayKind:
			i, err := jsonpointer.ArrayIndex(path, last, container.Len())
			if err != nil {
				return container, err
			}
			if result, ok := container.SetIndex(i, value); ok {
				return result, nil
			}
		}
		return container, notFound(path)
	})
}

func move(doc jsonvalue.Value, from, path jsonpointer.Pointer) (jsonvalue.Value, error) {
	value, err := jsonpointer.Resolve(doc, from)
	if err != nil {
		return doc, err
	}
	if path.HasPrefix(from) {
		return doc, patch.ErrInvalidOperation{
			Op:     string(OpMove),
			Reason: "cannot move " + from.String() + " into itself or its own child " + path.String(),
		}
	}
	doc, err = remove(doc, from)
	if err != nil {
		return doc, err
	}
	return add(doc, path, value)
}

func test(doc jsonvalue.Value, path jsonpointer.Pointer, value jsonvalue.Value) (jsonvalue.Value, error) {
	actual, err := jsonpointer.Resolve(doc, path)
	if err != nil {
		if patch.KindOf(err) == patch.PointerNotFound {
			return doc, patch.ErrTestFailed{Pointer: path.String(), Reason: "no value present"}
		}
		return doc, err
	}
	if !jsonvalue.Equal(actual, value) {
		return doc, patch.ErrTestFailed{
			Pointer: path.String(),
			Reason:  "expected " + value.String() + ", found " + actual.String(),
		}
	}
	return doc, nil
}
