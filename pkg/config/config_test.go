package config

import (
	"testing"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{"", ColorAuto, false},
		{"auto", ColorAuto, false},
		{"ALWAYS", ColorAlways, false},
		{" never ", ColorNever, false},
		{"sometimes", ColorAuto, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColorMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v; wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v; want %v", got, tt.want)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv(EnvListing, "")
		t.Setenv(EnvColor, "")
		t.Setenv(EnvOutputDir, "")
		t.Setenv(EnvRaw, "")
		c, err := FromEnv()
		if err != nil {
			t.Fatal(err)
		}
		if c != (Config{}) {
			t.Errorf("got %+v; want zero config", c)
		}
	})
	t.Run("set", func(t *testing.T) {
		t.Setenv(EnvListing, "1")
		t.Setenv(EnvColor, "never")
		t.Setenv(EnvOutputDir, "build")
		t.Setenv(EnvRaw, "true")
		c, err := FromEnv()
		if err != nil {
			t.Fatal(err)
		}
		want := Config{Listing: true, Color: ColorNever, OutputDir: "build", Raw: true}
		if c != want {
			t.Errorf("got %+v; want %+v", c, want)
		}
	})
	t.Run("bad color", func(t *testing.T) {
		t.Setenv(EnvColor, "purple")
		if _, err := FromEnv(); err == nil {
			t.Error("expected error")
		}
	})
}

func TestUseColor(t *testing.T) {
	tests := []struct {
		mode     ColorMode
		terminal bool
		want     bool
	}{
		{ColorAuto, true, true},
		{ColorAuto, false, false},
		{ColorAlways, false, true},
		{ColorNever, true, false},
	}
	for _, tt := range tests {
		if got := (Config{Color: tt.mode}).UseColor(tt.terminal); got != tt.want {
			t.Errorf("%v terminal=%v: got %v; want %v", tt.mode, tt.terminal, got, tt.want)
		}
	}
}
