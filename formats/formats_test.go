// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package formats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matt-FFFFFF/cliextra/params"
	"github.com/matt-FFFFFF/cliextra/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleTypes() tree.Branch {
	return tree.Branch{
		"app": tree.Branch{
			"flag":    tree.Leaf{Value: params.KindBool},
			"my_list": tree.Leaf{Value: params.KindList},
			"sub": tree.Branch{
				"int_param": tree.Leaf{Value: params.KindInt},
			},
		},
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext     string
		want    Format
		wantErr bool
	}{
		{ext: ".toml", want: TOML},
		{ext: ".TOML", want: TOML},
		{ext: ".yaml", want: YAML},
		{ext: ".yml", want: YAML},
		{ext: "json", want: JSON},
		{ext: ".ini", want: INI},
		{ext: ".xml", want: XML},
		{ext: ".hcl", want: HCL},
		{ext: ".cfg", wantErr: true},
		{ext: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()

			got, err := Detect(tt.ext)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrFormatNotRecognized)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriorityOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []Format{TOML, YAML, JSON, INI, XML, HCL}, All())
	assert.Equal(t, []string{".toml", ".yaml", ".yml", ".json", ".ini", ".xml", ".hcl"}, AllExtensions())
	assert.Equal(t, []string{".yaml", ".yml"}, YAML.Extensions())
	assert.Equal(t, "INI", INI.String())
	assert.Nil(t, Format(99).Extensions())
}

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	want := map[string]any{
		"app": map[string]any{
			"flag":    true,
			"my_list": []any{"a", "b", "c"},
			"unknown": "dropped by reconciliation",
			"sub": map[string]any{
				"int_param": int64(3),
			},
		},
	}

	for _, name := range []string{"config.toml", "config.yaml", "config.json", "config.ini", "config.xml", "config.hcl"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			data, err := os.ReadFile(filepath.Join("testdata", name))
			require.NoError(t, err)

			f, err := Detect(filepath.Ext(name))
			require.NoError(t, err)

			got, err := Parse(f, data, exampleTypes())
			require.NoError(t, err)

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseEmptyDocuments(t *testing.T) {
	t.Parallel()

	for _, f := range []Format{TOML, YAML, JSON, INI, HCL} {
		data := ""
		if f == JSON {
			data = "{}"
		}

		got, err := Parse(f, []byte(data), nil)
		require.NoError(t, err, f.String())
		assert.Empty(t, got, f.String())
		assert.NotNil(t, got, f.String())
	}

	got, err := Parse(YAML, []byte("# only a comment\n"), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{name: "toml syntax", format: TOML, data: "[app\nflag = "},
		{name: "yaml scalar document", format: YAML, data: "just a string"},
		{name: "json array document", format: JSON, data: `["a"]`},
		{name: "json syntax", format: JSON, data: `{"a": }`},
		{name: "xml syntax", format: XML, data: "<app><flag>true</app>"},
		{name: "hcl syntax", format: HCL, data: "app {"},
		{name: "hcl variables", format: HCL, data: "x = var.y\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.format, []byte(tt.data), nil)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestINI(t *testing.T) {
	t.Parallel()

	types := tree.Branch{
		"app": tree.Branch{
			"name":    tree.Leaf{Value: params.KindString},
			"path":    tree.Leaf{Value: params.KindString},
			"ratio":   tree.Leaf{Value: params.KindFloat},
			"verbose": tree.Leaf{Value: params.KindBool},
			"mapping": tree.Leaf{Value: params.KindList},
		},
	}

	data := `
[DEFAULT]
home = /srv

[app]
Name = demo
path = ${home}/${name}/$$data
ratio = 0.5
verbose = off
mapping = {"a": 1}

[other]
ref = ${app:name}-x
`

	got, err := Parse(INI, []byte(data), types)
	require.NoError(t, err)

	want := map[string]any{
		"app": map[string]any{
			"home":    "/srv",
			"name":    "demo",
			"path":    "/srv/demo/$data",
			"ratio":   0.5,
			"verbose": false,
			"mapping": map[string]any{"a": int64(1)},
		},
		"other": map[string]any{
			"home": "/srv",
			"ref":  "demo-x",
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestINIErrors(t *testing.T) {
	t.Parallel()

	intTypes := tree.Branch{"app": tree.Branch{"n": tree.Leaf{Value: params.KindInt}}}

	tests := []struct {
		name    string
		data    string
		types   tree.Branch
		wantErr error
	}{
		{name: "missing reference", data: "[app]\nx = ${nope}\n", wantErr: ErrInterpolation},
		{name: "bad dollar", data: "[app]\nx = $oops\n", wantErr: ErrInterpolation},
		{name: "unterminated", data: "[app]\nx = ${open\n", wantErr: ErrInterpolation},
		{name: "recursion", data: "[app]\na = ${b}\nb = ${a}\n", wantErr: ErrInterpolation},
		{name: "not an int", data: "[app]\nn = three\n", types: intTypes, wantErr: ErrCoerce},
		{
			name:    "unsupported kind",
			data:    "[app]\nn = 1\n",
			types:   tree.Branch{"app": tree.Branch{"n": tree.Leaf{Value: params.Kind(42)}}},
			wantErr: ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(INI, []byte(tt.data), tt.types)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestXMLSingleListElementAndAttributes(t *testing.T) {
	t.Parallel()

	data := `<app version="2"><my_list>only</my_list><flag enabled="yes">on</flag><sub><int_param/></sub></app>`

	types := tree.Branch{
		"app": tree.Branch{
			"flag":    tree.Leaf{Value: params.KindBool},
			"my_list": tree.Leaf{Value: params.KindList},
			"sub": tree.Branch{
				"int_param": tree.Leaf{Value: params.KindString},
			},
		},
	}

	got, err := Parse(XML, []byte(data), types)
	require.NoError(t, err)

	want := map[string]any{
		"app": map[string]any{
			"flag":    true,
			"my_list": []any{"only"},
			"sub":     map[string]any{"int_param": ""},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestCoerce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		kind    params.Kind
		want    any
		wantErr error
	}{
		{raw: "x", kind: params.KindString, want: "x"},
		{raw: " 42 ", kind: params.KindInt, want: int64(42)},
		{raw: "1.5", kind: params.KindFloat, want: 1.5},
		{raw: "YES", kind: params.KindBool, want: true},
		{raw: "0", kind: params.KindBool, want: false},
		{raw: "maybe", kind: params.KindBool, wantErr: ErrCoerce},
		{raw: `[1, "b"]`, kind: params.KindList, want: []any{int64(1), "b"}},
		{raw: `[1,`, kind: params.KindList, wantErr: ErrCoerce},
		{raw: "1", kind: params.Kind(0), wantErr: ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, err := Coerce(tt.raw, tt.kind)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"i":   7,
		"u":   uint64(8),
		"f":   float32(0.5),
		"m":   map[any]any{1: "one"},
		"s":   []string{"a"},
		"n":   []any{int32(1), map[string]any{"x": uint8(2)}},
		"nil": nil,
	}

	want := map[string]any{
		"i":   int64(7),
		"u":   int64(8),
		"f":   0.5,
		"m":   map[string]any{"1": "one"},
		"s":   []any{"a"},
		"n":   []any{int64(1), map[string]any{"x": int64(2)}},
		"nil": nil,
	}

	if diff := cmp.Diff(want, Normalize(in)); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}
