package cmd

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/go-drift/elements/pkg/element"
	"github.com/go-drift/elements/pkg/manifest"
)

func TestParseManifestArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantRest []string
		want     manifestOptions
		wantErr  bool
	}{
		{"none", nil, nil, manifestOptions{}, false},
		{"separate values", []string{"s.yaml", "--manifest", "m.yaml", "--prefix", "ui"}, []string{"s.yaml"}, manifestOptions{manifest: "m.yaml", prefix: "ui"}, false},
		{"inline values", []string{"--manifest=m.yaml", "--prefix=ui"}, nil, manifestOptions{manifest: "m.yaml", prefix: "ui"}, false},
		{"missing value", []string{"--manifest"}, nil, manifestOptions{}, true},
		{"unknown flag", []string{"--release"}, nil, manifestOptions{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, opts, err := parseManifestArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseManifestArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(rest, tt.wantRest) {
				t.Errorf("rest = %v, want %v", rest, tt.wantRest)
			}
			if opts != tt.want {
				t.Errorf("opts = %+v, want %+v", opts, tt.want)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	m, err := manifest.Parse([]byte(`
components:
  - name: badge
    version: v1.0.0
    props:
      label: string
      maxCount: {type: number, reflect: true}
    styles: ["p{}"]
  - name: plain
    extends: badge
`))
	if err != nil {
		t.Fatal(err)
	}
	reg := element.NewRegistry()
	classes, err := m.Define(reg, "ui")
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := inspect(&out, m, reg, classes, "ui"); err != nil {
		t.Fatalf("inspect() error = %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"ui-badge (badge v1.0.0)",
		"ui-plain (plain -)",
		"extends: badge",
		"styles:  1",
		"max-count        maxCount         number   yes",
		"label            label            string   no",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"inspect", "simulate", "version"} {
		if _, ok := commands[name]; !ok {
			t.Errorf("command %q not registered", name)
		}
	}
}
