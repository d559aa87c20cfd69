// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package formats

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/spf13/afero"
)

// FsFactory returns the filesystem local configuration files are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// HTTPClient is used for remote configuration files. nil means the
// go-getter default client.
var HTTPClient *http.Client

var badStatus = regexp.MustCompile(`bad response code: (\d+)`)

// Document is the raw content of a configuration location.
type Document struct {
	// Location is the URL, or the absolute path of a local file.
	Location  string
	Remote    bool
	Extension string
	// Format is set by Load once the extension is recognised.
	Format Format
	Data   []byte
}

// IsRemote reports whether location is an http or https URL.
func IsRemote(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}

	return u.Scheme == "http" || u.Scheme == "https"
}

// Fetch reads the document at location, downloading it for http and https
// URLs and reading it from FsFactory otherwise.
func Fetch(ctx context.Context, location string) (*Document, error) {
	if IsRemote(location) {
		return fetchRemote(ctx, location)
	}

	return fetchLocal(location)
}

func fetchLocal(location string) (*Document, error) {
	abs, err := filepath.Abs(location)
	if err != nil {
		return nil, fileError(location, err)
	}

	fs := FsFactory()

	info, err := fs.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fileError(abs, ErrNotFound)
		}

		return nil, fileError(abs, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fileError(abs, ErrNotRegularFile)
	}

	data, err := afero.ReadFile(fs, abs)
	if err != nil {
		return nil, fileError(abs, err)
	}

	return &Document{
		Location:  abs,
		Extension: strings.ToLower(filepath.Ext(abs)),
		Data:      data,
	}, nil
}

func fetchRemote(ctx context.Context, location string) (*Document, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fileError(location, err)
	}

	tmpDir, err := os.MkdirTemp("", "cliextra-getter-*")
	if err != nil {
		return nil, fileError(location, errors.Join(ErrFetch, err))
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	client := getter.Client{
		DisableSymlinks: true,
		Getters: []getter.Getter{
			&getter.HttpGetter{
				Client:                HTTPClient,
				DoNotCheckHeadFirst:   true,
				XTerraformGetDisabled: true,
			},
		},
	}

	dst := filepath.Join(tmpDir, "document")
	req := &getter.Request{
		Src:     location,
		Dst:     dst,
		GetMode: getter.ModeFile,
	}

	if _, err := client.Get(ctx, req); err != nil {
		return nil, fileError(location, fmt.Errorf("%w: %s", ErrFetch, reason(err)))
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, fileError(location, errors.Join(ErrFetch, err))
	}

	return &Document{
		Location:  location,
		Remote:    true,
		Extension: strings.ToLower(path.Ext(u.Path)),
		Data:      data,
	}, nil
}

// reason turns a go-getter status error into the HTTP reason phrase.
func reason(err error) string {
	m := badStatus.FindStringSubmatch(err.Error())
	if m == nil {
		return err.Error()
	}

	code, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return err.Error()
	}

	if text := http.StatusText(code); text != "" {
		return text
	}

	return err.Error()
}
