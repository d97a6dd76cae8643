package projection

// Accessor reads one named attribute from an item. ok is false when the
// item has no usable value.
type Accessor[T any] func(item T) (value any, ok bool)

// Source is the externally owned collection a Projection reads. A
// projection only enumerates, subscribes and looks up attributes; it
// never mutates the source.
type Source[T any] interface {
	// Items returns the current contents in native order.
	Items() []T
	// Subscribe registers fn to run after every add, remove or reset and
	// returns a function that removes it.
	Subscribe(fn func()) (unsubscribe func())
	// Attribute resolves an accessor for the named attribute, or nil when
	// the element type has no such attribute.
	Attribute(name string) Accessor[T]
	// Text returns the display text of item.
	Text(item T) string
}
