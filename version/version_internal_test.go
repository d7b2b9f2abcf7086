package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInfo(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		bi           *debug.BuildInfo
		wantVersion  string
		wantRevision string
	}{
		"no build info": {
			bi:           nil,
			wantVersion:  "(devel)",
			wantRevision: "unknown",
		},
		"module version and clean revision": {
			bi: &debug.BuildInfo{
				Main: debug.Module{Version: "v1.2.3"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc123"},
					{Key: "vcs.modified", Value: "false"},
				},
			},
			wantVersion:  "v1.2.3",
			wantRevision: "abc123",
		},
		"dirty revision": {
			bi: &debug.BuildInfo{
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc123"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			wantVersion:  "(devel)",
			wantRevision: "abc123-dirty",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			info := newInfo(tc.bi)
			assert.Equal(t, tc.wantVersion, info.Version)
			assert.Equal(t, tc.wantRevision, info.Revision)
			assert.NotEmpty(t, info.GoVersion)
			assert.Contains(t, info.Platform, "/")
		})
	}
}

func TestInfoString(t *testing.T) {
	t.Parallel()

	info := Info{Version: "v1.0.0", Revision: "abc", GoVersion: "go1.25.0", Platform: "linux/amd64"}

	assert.Equal(t, ""+
		"version:    v1.0.0\n"+
		"revision:   abc\n"+
		"go version: go1.25.0\n"+
		"platform:   linux/amd64\n",
		info.String())
}
