package projection

import (
	"image"
	"testing"

	"github.com/go-drift/statefade/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string
	Group string
	Icon  image.Image
}

func newSource(items ...entry) *ListSource[entry] {
	return NewListSource(items, func(e entry) string { return e.Name })
}

func names[T any](p *Projection[T], text func(T) string) []string {
	out := make([]string, 0, p.Len())
	for _, e := range p.Entries() {
		out = append(out, text(e.Item))
	}
	return out
}

func groupStarts[T any](p *Projection[T]) []bool {
	out := make([]bool, p.Len())
	for i := range out {
		out[i], _ = p.IsGroupStart(i)
	}
	return out
}

func entryName(e entry) string { return e.Name }

func TestProjection_GroupedSortScenario(t *testing.T) {
	src := newSource(
		entry{Name: "D", Group: "Y"},
		entry{Name: "C", Group: "X"},
		entry{Name: "A"},
		entry{Name: "B", Group: "X"},
	)
	p := New[entry](src, Options{AutoSort: true, GroupAttribute: "Group"})
	defer p.Close()

	assert.Equal(t, []string{"A", "B", "C", "D"}, names(p, entryName))
	assert.Equal(t, []bool{false, true, false, true}, groupStarts(p))

	start, group := p.IsGroupStart(2)
	assert.False(t, start)
	assert.Equal(t, "X", group, "group text is returned for non-starts too")
}

func TestProjection_GroupKeyBeatsText(t *testing.T) {
	src := newSource(
		entry{Name: "a", Group: "b"},
		entry{Name: "z", Group: "a"},
	)
	p := New[entry](src, Options{AutoSort: true, GroupAttribute: "Group"})
	assert.Equal(t, []string{"z", "a"}, names(p, entryName))
}

func TestProjection_OrdinalCompare(t *testing.T) {
	src := newSource(entry{Name: "b"}, entry{Name: "B"}, entry{Name: "a"})
	p := New[entry](src, Options{AutoSort: true})
	assert.Equal(t, []string{"B", "a", "b"}, names(p, entryName))
}

func TestProjection_NativeOrderWithoutAutoSort(t *testing.T) {
	src := newSource(
		entry{Name: "D", Group: "Y"},
		entry{Name: "A"},
		entry{Name: "B", Group: "Y"},
	)
	p := New[entry](src, Options{GroupAttribute: "Group"})

	assert.Equal(t, []string{"D", "A", "B"}, names(p, entryName))
	assert.Equal(t, []bool{true, true, true}, groupStarts(p))

	p.SetAutoSort(true)
	assert.Equal(t, []string{"A", "B", "D"}, names(p, entryName))
}

func TestProjection_RebuildIsIdempotent(t *testing.T) {
	src := newSource(
		entry{Name: "C", Group: "X"},
		entry{Name: "A", Group: "X"},
		entry{Name: "B", Group: "X"},
	)
	p := New[entry](src, Options{AutoSort: true, GroupAttribute: "Group"})
	first := p.Entries()
	p.Rebuild()
	assert.Equal(t, first, p.Entries())
}

func TestProjection_FollowsSourceChanges(t *testing.T) {
	m := metrics.New(nil)
	src := newSource(entry{Name: "B"})
	p := New[entry](src, Options{AutoSort: true}, WithMetrics(m))
	changed := 0
	p.OnChanged = func() { changed++ }

	src.Add(entry{Name: "A"})
	assert.Equal(t, []string{"A", "B"}, names(p, entryName))

	// RemoveAt takes a source index; the source still holds [B, A].
	src.RemoveAt(0)
	assert.Equal(t, []string{"A"}, names(p, entryName))

	src.Reset(nil)
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 3, changed)
	assert.Equal(t, 4.0, testutil.ToFloat64(m.ProjectionRebuilds))

	p.Close()
	p.Close()
	assert.Equal(t, 0, src.Listeners())
	src.Add(entry{Name: "Z"})
	assert.Equal(t, 0, p.Len(), "closed projections stop following")
}

func TestProjection_MissingGroupAttribute(t *testing.T) {
	src := newSource(entry{Name: "B", Group: "X"}, entry{Name: "A", Group: "Y"})
	p := New[entry](src, Options{AutoSort: true, GroupAttribute: "Category"})

	assert.Equal(t, []string{"A", "B"}, names(p, entryName))
	assert.Equal(t, []bool{false, false}, groupStarts(p))
}

func TestProjection_IsGroupStartOutOfRange(t *testing.T) {
	p := New[entry](newSource(entry{Name: "A", Group: "G"}), Options{GroupAttribute: "Group"})
	start, group := p.IsGroupStart(5)
	assert.False(t, start)
	assert.Empty(t, group)
	start, _ = p.IsGroupStart(-1)
	assert.False(t, start)
}

func TestProjection_Image(t *testing.T) {
	icon := image.NewRGBA(image.Rect(0, 0, 16, 16))
	src := newSource(entry{Name: "A", Icon: icon}, entry{Name: "B"})
	p := New[entry](src, Options{ImageAttribute: "Icon"})

	assert.Same(t, icon, p.Image(p.At(0).Item))
	assert.Nil(t, p.Image(p.At(1).Item))

	var typedNil *image.RGBA
	assert.Nil(t, p.Image(entry{Icon: typedNil}))
}

func TestProjection_ImageFailuresYieldNil(t *testing.T) {
	t.Run("missing attribute", func(t *testing.T) {
		p := New[entry](newSource(entry{Name: "A"}), Options{ImageAttribute: "Picture"})
		assert.Nil(t, p.Image(p.At(0).Item))
	})
	t.Run("wrong type", func(t *testing.T) {
		p := New[entry](newSource(entry{Name: "A"}), Options{ImageAttribute: "Name"})
		assert.Nil(t, p.Image(p.At(0).Item))
	})
	t.Run("panicking accessor", func(t *testing.T) {
		p := New[*panicky](NewListSource([]*panicky{{}}, nil), Options{ImageAttribute: "Icon", GroupAttribute: "Group"})
		assert.Nil(t, p.Image(p.At(0).Item))
		_, group := p.IsGroupStart(0)
		assert.Empty(t, group)
	})
}

type panicky struct{}

func (*panicky) Icon() image.Image { panic("decoder exploded") }
func (*panicky) Group() string     { panic("lookup exploded") }

func TestProjection_MapItems(t *testing.T) {
	src := NewListSource([]map[string]any{
		{"name": "b", "group": "g2"},
		{"name": "a", "group": "g1"},
		{"name": "c"},
	}, func(m map[string]any) string { s, _ := m["name"].(string); return s })
	p := New[map[string]any](src, Options{AutoSort: true, GroupAttribute: "group"})

	assert.Equal(t, []string{"c", "a", "b"}, names(p, src.Text))
	assert.Equal(t, []bool{false, true, true}, groupStarts(p))
}

func TestProjection_InterfaceItems(t *testing.T) {
	src := NewListSource([]any{
		entry{Name: "b", Group: "x"},
		&entry{Name: "a", Group: "x"},
		"plain",
	}, nil)
	p := New[any](src, Options{AutoSort: true, GroupAttribute: "Group"})
	require.Equal(t, 3, p.Len())
	assert.Equal(t, "", p.At(0).Group)
	assert.Equal(t, "x", p.At(1).Group)
	assert.Equal(t, "x", p.At(2).Group)
}

func TestProjection_StringerGroup(t *testing.T) {
	type row struct {
		Name string
		Kind kind
	}
	src := NewListSource([]row{{Name: "a", Kind: 2}, {Name: "b", Kind: 1}}, func(r row) string { return r.Name })
	p := New[row](src, Options{AutoSort: true, GroupAttribute: "Kind"})
	assert.Equal(t, "kind-1", p.At(0).Group)
	assert.Equal(t, "kind-2", p.At(1).Group)
}

type kind int

func (k kind) String() string {
	return "kind-" + string(rune('0'+int(k)))
}

func TestProjection_Index(t *testing.T) {
	p := New[entry](newSource(entry{Name: "B"}, entry{Name: "A"}), Options{AutoSort: true})
	assert.Equal(t, 1, p.Index(func(e entry) bool { return e.Name == "B" }))
	assert.Equal(t, -1, p.Index(func(e entry) bool { return e.Name == "Q" }))
}
