// Package widgets contains the grouped drop-down list control.
//
// A [GroupedList] combines three pieces: a [projection.Projection] that
// groups and sorts an external item source, a [listlayout.Engine] that
// measures and draws rows, and a [stateanim.Animator] that cross-fades
// the closed face between visual states as pointer, focus and enablement
// change. Hosts forward input and lifecycle events and call Paint and
// PaintList from their frame loop.
package widgets
