package projection

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// ListSource is an observable slice implementing [Source]. Attributes are
// resolved by reflection: an exported struct field, a niladic method
// returning one value, or a key of a string-keyed map.
type ListSource[T any] struct {
	items     []T
	text      func(T) string
	listeners map[int]func()
	nextID    int
	attrs     map[string]Accessor[T]
}

// NewListSource returns a source holding a copy of items. text renders the
// display text; nil uses fmt.Sprint.
func NewListSource[T any](items []T, text func(T) string) *ListSource[T] {
	if text == nil {
		text = func(item T) string { return fmt.Sprint(item) }
	}
	return &ListSource[T]{
		items:     slices.Clone(items),
		text:      text,
		listeners: make(map[int]func()),
		attrs:     make(map[string]Accessor[T]),
	}
}

// Items implements [Source].
func (s *ListSource[T]) Items() []T {
	return slices.Clone(s.items)
}

// Len returns the number of items.
func (s *ListSource[T]) Len() int {
	return len(s.items)
}

// Text implements [Source].
func (s *ListSource[T]) Text(item T) string {
	return s.text(item)
}

// Subscribe implements [Source].
func (s *ListSource[T]) Subscribe(fn func()) func() {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		delete(s.listeners, id)
	}
}

// Listeners returns the number of active subscriptions.
func (s *ListSource[T]) Listeners() int {
	return len(s.listeners)
}

// Add appends items and notifies subscribers.
func (s *ListSource[T]) Add(items ...T) {
	if len(items) == 0 {
		return
	}
	s.items = append(s.items, items...)
	s.notify()
}

// RemoveAt removes the item at index i. Out-of-range indexes are ignored.
func (s *ListSource[T]) RemoveAt(i int) {
	if i < 0 || i >= len(s.items) {
		return
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.notify()
}

// Reset replaces the contents and notifies subscribers.
func (s *ListSource[T]) Reset(items []T) {
	s.items = slices.Clone(items)
	s.notify()
}

func (s *ListSource[T]) notify() {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := s.listeners[id]; ok {
			fn()
		}
	}
}

// Attribute implements [Source]. The lookup is cached per name.
func (s *ListSource[T]) Attribute(name string) Accessor[T] {
	if name == "" {
		return nil
	}
	if acc, ok := s.attrs[name]; ok {
		return acc
	}
	acc := reflectAccessor[T](name)
	s.attrs[name] = acc
	return acc
}

// reflectAccessor builds an accessor for name. For concrete element types
// the field or method is resolved up front and nil is returned when it does
// not exist. Interface element types are resolved per dynamic type.
func reflectAccessor[T any](name string) Accessor[T] {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Interface {
		get := lookupFor(typ, name)
		if get == nil {
			return nil
		}
		return func(item T) (any, bool) {
			return get(reflect.ValueOf(&item).Elem())
		}
	}

	var mu sync.Mutex
	cache := make(map[reflect.Type]getter)
	return func(item T) (any, bool) {
		v := reflect.ValueOf(item)
		if !v.IsValid() {
			return nil, false
		}
		mu.Lock()
		get, ok := cache[v.Type()]
		if !ok {
			get = lookupFor(v.Type(), name)
			cache[v.Type()] = get
		}
		mu.Unlock()
		if get == nil {
			return nil, false
		}
		return get(v)
	}
}

type getter func(v reflect.Value) (any, bool)

func lookupFor(typ reflect.Type, name string) getter {
	if m, ok := typ.MethodByName(name); ok && isGetter(m.Type, 1) {
		return func(v reflect.Value) (any, bool) {
			if isNilPointer(v) {
				return nil, false
			}
			return v.Method(m.Index).Call(nil)[0].Interface(), true
		}
	}

	base := typ
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	switch base.Kind() {
	case reflect.Struct:
		f, ok := base.FieldByName(name)
		if !ok || !f.IsExported() {
			return nil
		}
		return func(v reflect.Value) (any, bool) {
			v, ok := deref(v)
			if !ok {
				return nil, false
			}
			fv, err := v.FieldByIndexErr(f.Index)
			if err != nil {
				return nil, false
			}
			return fv.Interface(), true
		}
	case reflect.Map:
		if base.Key().Kind() != reflect.String {
			return nil
		}
		key := reflect.ValueOf(name).Convert(base.Key())
		return func(v reflect.Value) (any, bool) {
			v, ok := deref(v)
			if !ok || v.IsNil() {
				return nil, false
			}
			mv := v.MapIndex(key)
			if !mv.IsValid() {
				return nil, false
			}
			return mv.Interface(), true
		}
	}
	return nil
}

// isGetter reports whether a method type (receiver included) takes no
// arguments and returns exactly one value.
func isGetter(t reflect.Type, receivers int) bool {
	return t.NumIn() == receivers && t.NumOut() == 1
}

func isNilPointer(v reflect.Value) bool {
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func deref(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, true
}
