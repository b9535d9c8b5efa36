// Package config loads the sandbox configuration file and pushes its values
// into the bindables of the input stack.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hubastard/groveinput/engine/bindable"
	"github.com/hubastard/groveinput/engine/input"
	"github.com/hubastard/groveinput/engine/input/tablet"
)

const DefaultFilename = "groveinput.yml"

type Config struct {
	Window WindowConfig `yaml:"window"`
	// Terminal runs the sandbox in the terminal instead of a GL window.
	Terminal bool        `yaml:"terminal"`
	Input    InputConfig `yaml:"input"`
}

type WindowConfig struct {
	Title      string     `yaml:"title"`
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	VSync      bool       `yaml:"vsync"`
	ClearColor [4]float32 `yaml:"clear_color"`
}

type InputConfig struct {
	// PassThrough is the initial mode of the sandbox's pass-through panel.
	PassThrough bool         `yaml:"pass_through"`
	Mouse       DeviceConfig `yaml:"mouse"`
	Keyboard    DeviceConfig `yaml:"keyboard"`
	Joystick    DeviceConfig `yaml:"joystick"`
	Midi        DeviceConfig `yaml:"midi"`
	Tablet      TabletConfig `yaml:"tablet"`
}

type DeviceConfig struct {
	Enabled *bool `yaml:"enabled"` // nil keeps the handler default
}

// TabletConfig leaves every unset field to the detected tablet.
type TabletConfig struct {
	DeviceConfig       `yaml:",inline"`
	AreaOffset         *[2]float32 `yaml:"area_offset"`
	AreaSize           *[2]float32 `yaml:"area_size"`
	OutputAreaPosition *[2]float32 `yaml:"output_area_position"`
	OutputAreaSize     *[2]float32 `yaml:"output_area_size"`
	Rotation           *float32    `yaml:"rotation"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:      "groveinput sandbox",
			Width:      1280,
			Height:     720,
			VSync:      true,
			ClearColor: [4]float32{0.08, 0.10, 0.12, 1},
		},
		Input: InputConfig{PassThrough: true},
	}
}

// Load reads path on top of the defaults. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("no config file, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return Default(), fmt.Errorf("config: %s: window size %dx%d", path, cfg.Window.Width, cfg.Window.Height)
	}
	slog.Info("loaded config", "path", path)
	return cfg, nil
}

// Apply sets the enabled bindable of a device handler.
func (d DeviceConfig) Apply(h input.DeviceHandler) {
	if d.Enabled != nil {
		h.Enabled().Set(*d.Enabled)
	}
}

func (t TabletConfig) Apply(h *tablet.Handler) {
	t.DeviceConfig.Apply(h)
	setVec(h.AreaOffset, t.AreaOffset)
	setVec(h.AreaSize, t.AreaSize)
	setVec(h.OutputAreaPosition, t.OutputAreaPosition)
	setVec(h.OutputAreaSize, t.OutputAreaSize)
	if t.Rotation != nil {
		h.Rotation.Set(*t.Rotation)
	}
}

func setVec(b *bindable.Bindable[input.Vec2], v *[2]float32) {
	if v != nil {
		b.Set(input.Vec2{X: v[0], Y: v[1]})
	}
}
