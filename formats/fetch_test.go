// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package formats

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRemote(t *testing.T) {
	t.Parallel()

	assert.True(t, IsRemote("http://example.com/config.toml"))
	assert.True(t, IsRemote("https://example.com/config.toml"))
	assert.False(t, IsRemote("ftp://example.com/config.toml"))
	assert.False(t, IsRemote("/etc/app/config.toml"))
	assert.False(t, IsRemote("config.toml"))
	assert.False(t, IsRemote(`C:\config.toml`))
}

// Tests that stub FsFactory must not run in parallel.
func TestFetchLocal(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/app/config.TOML", []byte("[app]\nflag = true\n"), 0o644))
	require.NoError(t, fs.MkdirAll("/etc/app/dir.toml", 0o755))

	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	doc, err := Fetch(context.Background(), "/etc/app/config.TOML")
	require.NoError(t, err)
	assert.Equal(t, "/etc/app/config.TOML", doc.Location)
	assert.Equal(t, ".toml", doc.Extension)
	assert.False(t, doc.Remote)
	assert.Equal(t, "[app]\nflag = true\n", string(doc.Data))

	_, err = Fetch(context.Background(), "/etc/app/missing.toml")
	require.ErrorIs(t, err, ErrConfigurationFile)
	require.ErrorIs(t, err, ErrNotFound)

	var cfe *ConfigurationFileError
	require.ErrorAs(t, err, &cfe)
	assert.Equal(t, "/etc/app/missing.toml", cfe.Location)

	_, err = Fetch(context.Background(), "/etc/app/dir.toml")
	require.ErrorIs(t, err, ErrNotRegularFile)
}

func TestFetchLocalRelativeIsAbsolute(t *testing.T) {
	fs := afero.NewMemMapFs()

	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	_, err := Fetch(context.Background(), "relative.yaml")

	var cfe *ConfigurationFileError
	require.ErrorAs(t, err, &cfe)
	assert.True(t, filepath.IsAbs(cfe.Location), cfe.Location)
	assert.Contains(t, err.Error(), cfe.Location)
}

func TestLoadFromTestdata(t *testing.T) {
	t.Parallel()

	doc, got, err := Load(context.Background(), filepath.Join("testdata", "config.yaml"), exampleTypes())
	require.NoError(t, err)
	assert.Equal(t, YAML, doc.Format)
	assert.True(t, filepath.IsAbs(doc.Location))
	assert.Contains(t, got, "app")
}

func TestLoadUnrecognisedFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/config.cfg", []byte("x=1"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/cfg/broken.json", []byte("{"), 0o644))

	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	_, _, err := Load(context.Background(), "/cfg/config.cfg", nil)
	require.ErrorIs(t, err, ErrConfigurationFile)
	require.ErrorIs(t, err, ErrFormatNotRecognized)
	assert.Contains(t, err.Error(), "format not recognized")

	_, _, err = Load(context.Background(), "/cfg/broken.json", nil)
	require.ErrorIs(t, err, ErrConfigurationFile)
	require.ErrorIs(t, err, ErrParse)
}

func TestFetchRemote(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/config.yaml", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte("app:\n  flag: true\n"))
	})
	mux.HandleFunc("/forbidden.toml", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	tests := []struct {
		name       string
		path       string
		wantErr    error
		wantReason string
	}{
		{name: "ok", path: "/config.yaml"},
		{name: "not found", path: "/missing.toml", wantErr: ErrFetch, wantReason: "Not Found"},
		{name: "forbidden", path: "/forbidden.toml", wantErr: ErrFetch, wantReason: "Forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Fetch(context.Background(), srv.URL+tt.path)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, ErrConfigurationFile)
				assert.Contains(t, err.Error(), tt.wantReason)
				assert.Contains(t, err.Error(), srv.URL+tt.path)

				return
			}

			require.NoError(t, err)
			assert.True(t, doc.Remote)
			assert.Equal(t, ".yaml", doc.Extension)
			assert.Equal(t, "app:\n  flag: true\n", string(doc.Data))
		})
	}
}

func TestReason(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Not Found", reason(errors.New("bad response code: 404")))
	assert.Equal(t, "boom", reason(errors.New("boom")))
	assert.Equal(t, "bad response code: 799", reason(errors.New("bad response code: 799")))
}
