package main

import (
	"github.com/go-drift/statefade/pkg/bufferedpaint"
	"github.com/go-drift/statefade/pkg/projection"
	"github.com/go-drift/statefade/pkg/visualstate"
	"github.com/go-drift/statefade/pkg/widgets"
)

// buildList wires a grouped list from the loaded configuration.
func buildList(e *env, items []listItem, platform bufferedpaint.Platform, defaultState visualstate.State) (*widgets.GroupedList[listItem], error) {
	reg, err := e.cfg.Registry()
	if err != nil {
		return nil, err
	}
	th, err := e.cfg.BuildTheme()
	if err != nil {
		return nil, err
	}
	if defaultState == "" {
		if defaultState, err = e.cfg.DefaultState(); err != nil {
			return nil, err
		}
	}
	src := projection.NewListSource(items, func(it listItem) string { return it.Name })
	duration := e.cfg.DefaultDuration()
	return widgets.NewGroupedList(widgets.GroupedListConfig[listItem]{
		Source:            src,
		Projection:        e.cfg.ProjectionOptions(),
		Layout:            e.cfg.LayoutOptions(),
		Theme:             th,
		Registry:          reg,
		DefaultState:      defaultState,
		Platform:          platform,
		Capabilities:      e.cfg.Capabilities(),
		AnimationDisabled: !e.cfg.Animation.Enabled,
		DefaultDuration:   &duration,
		Logger:            e.logger,
		Metrics:           e.metrics,
	})
}

func itemsFrom(path string) ([]listItem, error) {
	if path == "" {
		return sampleItems(), nil
	}
	return loadItems(path)
}
