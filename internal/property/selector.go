package property

import (
	"fmt"
	"reflect"
	"strings"

	"framerec/internal/domain/errs"
)

// Selector identifies a field of T by a function returning its address.
//
// Declare selectors once, as package-level values: the selector's identity is
// part of the handle cache key.
type Selector[T any, V any] struct {
	fn func(*T) *V
}

// Select returns a selector for the field addressed by fn.
func Select[T any, V any](fn func(*T) *V) *Selector[T, V] {
	return &Selector[T, V]{fn: fn}
}

// Via returns a selector on T reaching the field inner selects on the M
// that outer selects on T.
func Via[T any, M any, V any](outer *Selector[T, M], inner *Selector[M, V]) *Selector[T, V] {
	return &Selector[T, V]{
		fn: func(t *T) *V {
			m := outer.fn(t)
			if m == nil {
				return nil
			}
			return inner.fn(m)
		},
	}
}

// path maps the selector onto a JSON path within obj's serialized form.
func (s *Selector[T, V]) path(obj *T) (path string, err error) {
	typeName := fmt.Sprintf("%T", obj)

	defer func() {
		if r := recover(); r != nil {
			err = &errs.SelectorError{Type: typeName, Reason: fmt.Sprintf("selector panicked: %v", r)}
		}
	}()

	ptr := s.fn(obj)
	if ptr == nil {
		return "", &errs.SelectorError{Type: typeName, Reason: "selector returned nil"}
	}

	root := reflect.ValueOf(obj).Elem()
	if root.Kind() != reflect.Struct {
		return "", &errs.SelectorError{Type: typeName, Reason: "target is not a struct"}
	}

	want := reflect.ValueOf(ptr)
	p, ok := locate(root, want.Pointer(), want.Type().Elem(), "")
	if !ok {
		return "", &errs.SelectorError{
			Type:   typeName,
			Reason: fmt.Sprintf("selected %s is not a serialized field reachable from the object", want.Type().Elem()),
		}
	}
	return p, nil
}

// ******************************** Private ********************************

// locate walks the exported, serialized fields of v looking for the field
// stored at addr with type typ, and returns its JSON path.
func locate(v reflect.Value, addr uintptr, typ reflect.Type, prefix string) (string, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, skip, flatten := jsonName(sf)
		if skip {
			continue
		}

		fv := v.Field(i)
		path := prefix
		if !flatten {
			path = joinPath(prefix, name)
			if fv.Addr().Pointer() == addr && sf.Type == typ {
				return path, true
			}
		}

		inner := fv
		if inner.Kind() == reflect.Pointer {
			if inner.IsNil() {
				continue
			}
			inner = inner.Elem()
		}
		if inner.Kind() != reflect.Struct {
			continue
		}
		if p, ok := locate(inner, addr, typ, path); ok {
			return p, true
		}
	}
	return "", false
}

// jsonName returns the serialized name of a field the way encoding/json sees it.
func jsonName(sf reflect.StructField) (name string, skip, flatten bool) {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "", true, false
	}
	name, _, _ = strings.Cut(tag, ",")
	if name != "" {
		return name, false, false
	}

	if sf.Anonymous {
		ft := sf.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			return "", false, true
		}
	}
	return sf.Name, false, false
}

// joinPath appends a key to a gjson/sjson path, escaping path syntax.
func joinPath(prefix, key string) string {
	var b strings.Builder
	b.Grow(len(prefix) + len(key) + 1)
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteByte('.')
	}
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
