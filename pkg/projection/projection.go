// Package projection keeps a grouped, optionally sorted view over an
// externally owned collection.
//
// A [Projection] rebuilds its whole ordering whenever the source reports a
// change; there is no incremental patching. Group and image attributes are
// resolved once through the source and cached. Attribute failures are
// never surfaced: a missing group reads as "" and a missing image as nil.
package projection

import (
	"fmt"
	"image"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"github.com/go-drift/statefade/pkg/logging"
	"github.com/go-drift/statefade/pkg/metrics"
)

// Entry is one row of the projection. Item is never modified.
type Entry[T any] struct {
	Item  T
	Group string
	Text  string
}

// Options selects the attributes and ordering of a projection.
type Options struct {
	// AutoSort orders rows by (group, text). Otherwise the source's native
	// order is kept.
	AutoSort bool
	// GroupAttribute names the attribute holding the group key.
	GroupAttribute string
	// ImageAttribute names the attribute holding the row image.
	ImageAttribute string
}

type settings struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures ambient dependencies of a Projection.
type Option func(*settings)

// WithLogger sets the logger for rebuild events.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics counts rebuilds into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// Projection is a grouped view over a Source. Like the widget that owns
// it, it must only be used from the UI thread.
type Projection[T any] struct {
	// OnChanged runs after every rebuild triggered by the source.
	OnChanged func()

	source  Source[T]
	opts    Options
	entries []Entry[T]

	groupAcc Accessor[T]
	imageAcc Accessor[T]
	resolved bool

	unsubscribe func()
	settings
}

// New builds a projection over src, subscribes to its changes and
// performs the first rebuild.
func New[T any](src Source[T], opts Options, options ...Option) *Projection[T] {
	p := &Projection[T]{
		source:   src,
		opts:     opts,
		settings: settings{logger: logging.NewNop()},
	}
	for _, o := range options {
		o(&p.settings)
	}
	p.unsubscribe = src.Subscribe(p.sourceChanged)
	p.Rebuild()
	return p
}

// Close stops following the source. It is safe to call more than once.
func (p *Projection[T]) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

// AutoSort reports whether rows are sorted by (group, text).
func (p *Projection[T]) AutoSort() bool {
	return p.opts.AutoSort
}

// SetAutoSort changes the ordering mode and rebuilds.
func (p *Projection[T]) SetAutoSort(on bool) {
	if p.opts.AutoSort == on {
		return
	}
	p.opts.AutoSort = on
	p.sourceChanged()
}

func (p *Projection[T]) sourceChanged() {
	p.Rebuild()
	if p.OnChanged != nil {
		p.OnChanged()
	}
}

// Rebuild replaces the ordering with the source's current contents.
func (p *Projection[T]) Rebuild() {
	p.resolve()
	items := p.source.Items()
	entries := make([]Entry[T], len(items))
	for i, item := range items {
		entries[i] = Entry[T]{
			Item:  item,
			Group: p.groupOf(item),
			Text:  p.source.Text(item),
		}
	}
	if p.opts.AutoSort {
		slices.SortStableFunc(entries, compareEntries[T])
	}
	p.entries = entries
	p.metrics.ProjectionRebuilt()
	p.logger.Debug("projection rebuilt", "items", len(entries), "auto_sort", p.opts.AutoSort)
}

func compareEntries[T any](a, b Entry[T]) int {
	if c := strings.Compare(a.Group, b.Group); c != 0 {
		return c
	}
	return strings.Compare(a.Text, b.Text)
}

func (p *Projection[T]) resolve() {
	if p.resolved {
		return
	}
	p.resolved = true
	p.groupAcc = p.source.Attribute(p.opts.GroupAttribute)
	p.imageAcc = p.source.Attribute(p.opts.ImageAttribute)
	if p.opts.GroupAttribute != "" && p.groupAcc == nil {
		p.logger.Debug("group attribute not found", "attribute", p.opts.GroupAttribute)
	}
	if p.opts.ImageAttribute != "" && p.imageAcc == nil {
		p.logger.Debug("image attribute not found", "attribute", p.opts.ImageAttribute)
	}
}

// Len returns the number of rows.
func (p *Projection[T]) Len() int {
	return len(p.entries)
}

// At returns row i. It panics when i is out of range, like a slice index.
func (p *Projection[T]) At(i int) Entry[T] {
	return p.entries[i]
}

// Entries returns a copy of all rows in display order.
func (p *Projection[T]) Entries() []Entry[T] {
	return slices.Clone(p.entries)
}

// Index returns the row index of the first entry matching fn, or -1.
func (p *Projection[T]) Index(fn func(T) bool) int {
	return slices.IndexFunc(p.entries, func(e Entry[T]) bool { return fn(e.Item) })
}

// IsGroupStart reports whether row i begins a group: the first row with a
// non-empty group, or any row whose group differs from the previous row's.
// The row's group text is returned either way. Out-of-range rows report
// false and "".
func (p *Projection[T]) IsGroupStart(i int) (bool, string) {
	if i < 0 || i >= len(p.entries) {
		return false, ""
	}
	group := p.entries[i].Group
	if i == 0 {
		return group != "", group
	}
	return p.entries[i-1].Group != group, group
}

// Image returns the item's image, or nil when it has none.
func (p *Projection[T]) Image(item T) (img image.Image) {
	p.resolve()
	if p.imageAcc == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Debug("image attribute lookup failed", "panic", r)
			img = nil
		}
	}()
	v, ok := p.imageAcc(item)
	if !ok {
		return nil
	}
	img, _ = v.(image.Image)
	if img != nil {
		if rv := reflect.ValueOf(img); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil
		}
	}
	return img
}

func (p *Projection[T]) groupOf(item T) (group string) {
	if p.groupAcc == nil {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Debug("group attribute lookup failed", "panic", r)
			group = ""
		}
	}()
	v, ok := p.groupAcc(item)
	if !ok || v == nil {
		return ""
	}
	switch g := v.(type) {
	case string:
		return g
	case fmt.Stringer:
		return g.String()
	default:
		return fmt.Sprint(g)
	}
}
