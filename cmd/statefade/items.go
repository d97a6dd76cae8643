package main

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// listItem is one row read from an items file. Group and Icon are the
// attribute names the default configuration resolves.
type listItem struct {
	Name  string
	Group string
	Icon  image.Image
}

type itemsFile struct {
	Items []struct {
		Name  string `yaml:"name"`
		Group string `yaml:"group"`
		Icon  string `yaml:"icon"`
	} `yaml:"items"`
}

// loadItems reads an items YAML file. Icon paths are relative to the
// file; icons that cannot be decoded are skipped.
func loadItems(path string) ([]listItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	var f itemsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	items := make([]listItem, 0, len(f.Items))
	for _, it := range f.Items {
		item := listItem{Name: it.Name, Group: it.Group}
		if it.Icon != "" {
			item.Icon = loadIcon(filepath.Join(dir, it.Icon))
		}
		items = append(items, item)
	}
	return items, nil
}

func loadIcon(path string) image.Image {
	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil
	}
	return img
}

// sampleItems is used when no items file is given.
func sampleItems() []listItem {
	return []listItem{
		{Name: "Inbox"},
		{Name: "Drafts", Group: "Mail"},
		{Name: "Sent", Group: "Mail"},
		{Name: "Archive", Group: "Storage"},
		{Name: "Trash", Group: "Storage"},
	}
}
