// Package config loads the optional statefade YAML file.
//
// A missing file means defaults. A present file is decoded over the
// defaults, so only the keys it names change. Every state name, trigger,
// anchor, duration and colour is checked at load time; problems come back
// as errors of kind [errors.KindConfig].
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-drift/statefade/pkg/animation"
	"github.com/go-drift/statefade/pkg/bufferedpaint"
	"github.com/go-drift/statefade/pkg/errors"
	"github.com/go-drift/statefade/pkg/graphics"
	"github.com/go-drift/statefade/pkg/listlayout"
	"github.com/go-drift/statefade/pkg/projection"
	"github.com/go-drift/statefade/pkg/stateanim"
	"github.com/go-drift/statefade/pkg/theme"
	"github.com/go-drift/statefade/pkg/visualstate"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the file name the CLI looks for.
const DefaultFile = "statefade.yaml"

// Config represents the statefade.yaml configuration.
type Config struct {
	Animation AnimationConfig `yaml:"animation"`
	List      ListConfig      `yaml:"list"`
	Theme     ThemeConfig     `yaml:"theme"`
	Platform  PlatformConfig  `yaml:"platform"`
}

// AnimationConfig controls the face cross-fades.
type AnimationConfig struct {
	Enabled         bool               `yaml:"enabled"`
	DefaultState    string             `yaml:"default_state"`
	DefaultDuration Duration           `yaml:"default_duration"`
	Curve           string             `yaml:"curve"`
	Transitions     []TransitionConfig `yaml:"transitions,omitempty"`
	Triggers        []TriggerConfig    `yaml:"triggers,omitempty"`
}

// TransitionConfig is one (from, to, duration) entry.
type TransitionConfig struct {
	From     string   `yaml:"from"`
	To       string   `yaml:"to"`
	Duration Duration `yaml:"duration"`
}

// TriggerConfig is one trigger entry. Bounds is empty for the whole
// client area, otherwise [left, top, width, height].
type TriggerConfig struct {
	Type   string    `yaml:"type"`
	State  string    `yaml:"state"`
	Bounds []float64 `yaml:"bounds,omitempty,flow"`
	Anchor []string  `yaml:"anchor,omitempty,flow"`
}

// ListConfig controls the projection and row metrics.
type ListConfig struct {
	AutoSort       bool    `yaml:"auto_sort"`
	GroupAttribute string  `yaml:"group_attribute,omitempty"`
	ImageAttribute string  `yaml:"image_attribute,omitempty"`
	GroupIndent    float64 `yaml:"group_indent"`
	IconMargin     float64 `yaml:"icon_margin"`
	IconSize       float64 `yaml:"icon_size"`
	EditSlotIcons  bool    `yaml:"edit_slot_icons"`
}

// ThemeConfig selects a base palette and optional colour overrides in
// "#RRGGBB" or "#AARRGGBB" form.
type ThemeConfig struct {
	Brightness          string            `yaml:"brightness"`
	FontSize            float64           `yaml:"font_size,omitempty"`
	Background          string            `yaml:"background,omitempty"`
	Foreground          string            `yaml:"foreground,omitempty"`
	SelectionBackground string            `yaml:"selection_background,omitempty"`
	SelectionForeground string            `yaml:"selection_foreground,omitempty"`
	DisabledBackground  string            `yaml:"disabled_background,omitempty"`
	DisabledForeground  string            `yaml:"disabled_foreground,omitempty"`
	Header              string            `yaml:"header,omitempty"`
	Focus               string            `yaml:"focus,omitempty"`
	Border              string            `yaml:"border,omitempty"`
	Faces               map[string]string `yaml:"faces,omitempty"`
}

// PlatformConfig describes the host for the buffered-animation check.
type PlatformConfig struct {
	OSVersion       string `yaml:"os_version"`
	Theming         bool   `yaml:"theming"`
	ThemedRendering bool   `yaml:"themed_rendering"`
}

// Duration is a time.Duration read from YAML as "250ms" or as a bare
// integer number of milliseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	if node.ShortTag() == "!!int" {
		var ms int64
		if err := node.Decode(&ms); err != nil {
			return err
		}
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(node.Value))
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Default returns the built-in configuration: focus, hover and press
// triggers over the whole face and the default cross-fade length.
func Default() *Config {
	caps := bufferedpaint.DefaultCapabilities()
	layout := listlayout.DefaultOptions()
	return &Config{
		Animation: AnimationConfig{
			Enabled:         true,
			DefaultState:    string(visualstate.Normal),
			DefaultDuration: Duration(stateanim.DefaultDuration),
			Curve:           "ease-in-out",
			Triggers: []TriggerConfig{
				{Type: "focused", State: string(visualstate.Focused)},
				{Type: "hot", State: string(visualstate.Hot)},
				{Type: "pushed", State: string(visualstate.Pressed)},
			},
		},
		List: ListConfig{
			AutoSort:       true,
			GroupAttribute: "Group",
			ImageAttribute: "Icon",
			GroupIndent:    layout.GroupIndent,
			IconMargin:     layout.IconMargin,
			IconSize:       layout.IconSize,
			EditSlotIcons:  layout.EditSlotIcons,
		},
		Theme: ThemeConfig{Brightness: theme.BrightnessLight.String()},
		Platform: PlatformConfig{
			OSVersion:       caps.OSVersion,
			Theming:         caps.Theming,
			ThemedRendering: caps.ThemedRendering,
		},
	}
}

// LoadOptional reads path if it exists and returns defaults otherwise.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Load reads and validates path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, &errors.Error{Op: "config.Parse", Kind: errors.KindConfig, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks every name, number and colour in c.
func (c *Config) Validate() error {
	const op = "config.Validate"
	a := c.Animation
	if _, err := visualstate.ParseState(a.DefaultState); err != nil {
		return errors.Config(op, "animation.default_state: state %q is not valid", a.DefaultState)
	}
	if a.DefaultDuration < 0 {
		return errors.Config(op, "animation.default_duration must not be negative")
	}
	if _, err := animation.ParseCurve(a.Curve); err != nil {
		return errors.Config(op, "animation.curve: %v", err)
	}
	for i, t := range a.Transitions {
		if _, _, err := parseTransition(t); err != nil {
			return errors.Config(op, "animation.transitions[%d]: %v", i, err)
		}
	}
	for i, t := range a.Triggers {
		if _, err := parseTrigger(t); err != nil {
			return errors.Config(op, "animation.triggers[%d]: %v", i, err)
		}
	}

	l := c.List
	if l.GroupIndent < 0 || l.IconMargin < 0 || l.IconSize < 0 {
		return errors.Config(op, "list metrics must not be negative")
	}

	if _, err := c.Theme.build(); err != nil {
		return errors.Config(op, "theme: %v", err)
	}
	return nil
}

func parseTransition(t TransitionConfig) (visualstate.State, visualstate.State, error) {
	from, err := visualstate.ParseState(t.From)
	if err != nil {
		return "", "", fmt.Errorf("from: state %q is not valid", t.From)
	}
	to, err := visualstate.ParseState(t.To)
	if err != nil {
		return "", "", fmt.Errorf("to: state %q is not valid", t.To)
	}
	if t.Duration < 0 {
		return "", "", fmt.Errorf("duration must not be negative")
	}
	return from, to, nil
}

func parseTrigger(t TriggerConfig) (visualstate.Trigger, error) {
	typ, err := visualstate.ParseTriggerType(strings.ToLower(strings.TrimSpace(t.Type)))
	if err != nil {
		return visualstate.Trigger{}, err
	}
	state, err := visualstate.ParseState(t.State)
	if err != nil {
		return visualstate.Trigger{}, fmt.Errorf("state %q is not valid", t.State)
	}
	anchor, err := visualstate.ParseAnchor(t.Anchor)
	if err != nil {
		return visualstate.Trigger{}, err
	}
	trigger := visualstate.Trigger{Type: typ, State: state, Anchor: anchor}
	switch len(t.Bounds) {
	case 0:
	case 4:
		if t.Bounds[2] < 0 || t.Bounds[3] < 0 {
			return visualstate.Trigger{}, fmt.Errorf("bounds width and height must not be negative")
		}
		trigger.Bounds = graphics.RectFromLTWH(t.Bounds[0], t.Bounds[1], t.Bounds[2], t.Bounds[3])
	default:
		return visualstate.Trigger{}, fmt.Errorf("bounds needs 4 values [left, top, width, height], got %d", len(t.Bounds))
	}
	return trigger, nil
}

// Apply registers the configured transitions and triggers in reg.
func (c *Config) Apply(reg *visualstate.Registry) error {
	for i, t := range c.Animation.Transitions {
		from, to, err := parseTransition(t)
		if err != nil {
			return errors.Config("config.Apply", "animation.transitions[%d]: %v", i, err)
		}
		reg.AddTransition(from, to, time.Duration(t.Duration))
	}
	for i, t := range c.Animation.Triggers {
		trigger, err := parseTrigger(t)
		if err != nil {
			return errors.Config("config.Apply", "animation.triggers[%d]: %v", i, err)
		}
		reg.AddTrigger(trigger)
	}
	return nil
}

// Registry returns a new registry populated by Apply.
func (c *Config) Registry() (*visualstate.Registry, error) {
	reg := visualstate.NewRegistry()
	if err := c.Apply(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// DefaultState returns the validated default state.
func (c *Config) DefaultState() (visualstate.State, error) {
	s, err := visualstate.ParseState(c.Animation.DefaultState)
	if err != nil {
		return "", errors.Config("config.DefaultState", "state %q is not valid", c.Animation.DefaultState)
	}
	return s, nil
}

// DefaultDuration returns the fallback cross-fade length.
func (c *Config) DefaultDuration() time.Duration {
	return time.Duration(c.Animation.DefaultDuration)
}

// Curve returns the configured easing curve, falling back to
// animation.EaseInOut for a name Validate would reject.
func (c *Config) Curve() func(float64) float64 {
	curve, err := animation.ParseCurve(c.Animation.Curve)
	if err != nil {
		return animation.EaseInOut
	}
	return curve
}

// Capabilities returns the configured host facts.
func (c *Config) Capabilities() bufferedpaint.Capabilities {
	return bufferedpaint.Capabilities{
		OSVersion:       c.Platform.OSVersion,
		Theming:         c.Platform.Theming,
		ThemedRendering: c.Platform.ThemedRendering,
	}
}

// ProjectionOptions returns the grouping and sorting settings.
func (c *Config) ProjectionOptions() projection.Options {
	return projection.Options{
		AutoSort:       c.List.AutoSort,
		GroupAttribute: c.List.GroupAttribute,
		ImageAttribute: c.List.ImageAttribute,
	}
}

// LayoutOptions returns the row metrics.
func (c *Config) LayoutOptions() listlayout.Options {
	opts := listlayout.DefaultOptions()
	opts.GroupIndent = c.List.GroupIndent
	opts.IconMargin = c.List.IconMargin
	opts.IconSize = c.List.IconSize
	opts.EditSlotIcons = c.List.EditSlotIcons
	return opts
}

// BuildTheme returns the configured theme.
func (c *Config) BuildTheme() (*theme.ThemeData, error) {
	th, err := c.Theme.build()
	if err != nil {
		return nil, errors.Config("config.BuildTheme", "%v", err)
	}
	return th, nil
}

func (t ThemeConfig) build() (*theme.ThemeData, error) {
	b, err := theme.ParseBrightness(strings.ToLower(strings.TrimSpace(t.Brightness)))
	if err != nil {
		return nil, err
	}
	th := theme.ForBrightness(b)
	colors := th.ColorScheme
	overrides := []struct {
		name  string
		value string
		dst   *graphics.Color
	}{
		{"background", t.Background, &colors.Background},
		{"foreground", t.Foreground, &colors.OnBackground},
		{"selection_background", t.SelectionBackground, &colors.Selection},
		{"selection_foreground", t.SelectionForeground, &colors.OnSelection},
		{"disabled_background", t.DisabledBackground, &colors.DisabledBackground},
		{"disabled_foreground", t.DisabledForeground, &colors.OnDisabled},
		{"header", t.Header, &colors.Header},
		{"focus", t.Focus, &colors.Focus},
		{"border", t.Border, &colors.Border},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		col, err := graphics.ParseHex(o.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", o.name, err)
		}
		*o.dst = col
	}

	style := th.TextStyle.WithColor(colors.OnBackground)
	if t.FontSize < 0 {
		return nil, fmt.Errorf("font_size must not be negative")
	}
	if t.FontSize > 0 {
		style.FontSize = t.FontSize
	}
	th = th.CopyWith(&colors, &style, nil)
	th.FaceColors = theme.DeriveFaceColors(colors)
	for name, value := range t.Faces {
		s, err := visualstate.ParseState(name)
		if err != nil {
			return nil, fmt.Errorf("faces: state %q is not valid", name)
		}
		col, err := graphics.ParseHex(value)
		if err != nil {
			return nil, fmt.Errorf("faces.%s: %w", name, err)
		}
		th.FaceColors[s] = col
	}
	return th, nil
}
