package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hubastard/groveinput/engine/bindable"
	"github.com/hubastard/groveinput/engine/input"
	"github.com/hubastard/groveinput/engine/input/tablet"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFilename)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		check   func(t *testing.T, c Config)
	}{
		{
			name: "partial file keeps defaults",
			body: "window:\n  title: test\ninput:\n  pass_through: false\n",
			check: func(t *testing.T, c Config) {
				if c.Window.Title != "test" || c.Window.Width != 1280 || c.Input.PassThrough {
					t.Errorf("config = %+v", c)
				}
			},
		},
		{
			name: "tablet section",
			body: "input:\n  tablet:\n    enabled: false\n    area_size: [40, 20]\n    rotation: 90\n",
			check: func(t *testing.T, c Config) {
				tc := c.Input.Tablet
				if tc.Enabled == nil || *tc.Enabled || tc.AreaSize == nil || *tc.AreaSize != [2]float32{40, 20} {
					t.Errorf("tablet = %+v", tc)
				}
				if tc.Rotation == nil || *tc.Rotation != 90 || tc.AreaOffset != nil {
					t.Errorf("tablet = %+v", tc)
				}
			},
		},
		{name: "bad yaml", body: "window: [", wantErr: true},
		{name: "bad size", body: "window:\n  width: 0\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(writeConfig(t, tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, c)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if c != Default() {
		t.Errorf("missing file gave %+v", c)
	}
}

func TestTabletConfig_Apply(t *testing.T) {
	off := false
	rot := float32(45)
	tc := TabletConfig{
		DeviceConfig: DeviceConfig{Enabled: &off},
		AreaSize:     &[2]float32{30, 15},
		Rotation:     &rot,
	}
	h := tablet.New(bindable.New(input.Vec2{}))
	tc.Apply(h)

	if h.Enabled().Value() {
		t.Error("tablet still enabled")
	}
	if got := h.AreaSize.Value(); got != (input.Vec2{X: 30, Y: 15}) {
		t.Errorf("AreaSize = %v", got)
	}
	if h.Rotation.Value() != 45 {
		t.Errorf("Rotation = %v", h.Rotation.Value())
	}
	if !h.AreaOffset.IsDefault() {
		t.Error("unset AreaOffset was changed")
	}
}
