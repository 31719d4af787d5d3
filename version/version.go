// Package version exposes build metadata, set at link time:
//
//	go build -ldflags "-X github.com/jackzampolin/lpnmatch/version.GitRelease=v0.3.0 \
//	  -X github.com/jackzampolin/lpnmatch/version.GitCommit=$(git rev-parse HEAD) \
//	  -X github.com/jackzampolin/lpnmatch/version.GitCommitDate=$(git log -1 --format=%cI)"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// GitRelease is the release tag, or "dev" for local builds.
	GitRelease = "dev"
	// GitCommit is the full commit hash.
	GitCommit = ""
	// GitCommitDate is the commit timestamp.
	GitCommitDate = ""
	// GoInfo is the Go toolchain and platform the binary was built with.
	GoInfo = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
)

func init() {
	if GitCommit != "" {
		return
	}
	// Fall back to VCS stamping from `go build` when ldflags are absent.
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			GitCommit = s.Value
		case "vcs.time":
			GitCommitDate = s.Value
		}
	}
}
