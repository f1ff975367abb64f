package player

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/metafates/gache"
	"github.com/touchctl/touchctl/filesystem"
	"github.com/touchctl/touchctl/log"
	"github.com/touchctl/touchctl/version"
	"github.com/touchctl/touchctl/where"
)

// MinimumVersion is the oldest mpv with user-data properties.
const MinimumVersion = "0.36.0"

// probeLifetime bounds how long a probed version is trusted after an upgrade in place.
const probeLifetime = 24 * time.Hour

// runVersion returns the output of path --version.
var runVersion = func(path string) (string, error) {
	out, err := exec.Command(path, "--version").Output()
	return string(out), err
}

// probeCache maps resolved binary paths to the version they reported.
func probeCache() *gache.Cache[map[string]string] {
	return gache.New[map[string]string](&gache.Options{
		Path:       filepath.Join(where.Cache(), "player-versions.json"),
		Lifetime:   probeLifetime,
		FileSystem: &filesystem.GacheFs{},
	})
}

// Probe runs binary --version and parses the reported release.
// Results are cached per resolved path.
func Probe(binary string) (version.Version, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return version.Version{}, err
	}

	cache := probeCache()
	known, expired, err := cache.Get()
	if err != nil {
		log.Warnf("read version cache: %s", err)
	}
	if expired || known == nil {
		known = make(map[string]string)
	}

	if cached, ok := known[path]; ok {
		if v, err := version.Parse(cached); err == nil {
			return v, nil
		}
	}

	out, err := runVersion(path)
	if err != nil {
		return version.Version{}, fmt.Errorf("run %s --version: %w", binary, err)
	}

	v, err := version.Parse(out)
	if err != nil {
		return version.Version{}, err
	}

	known[path] = v.String()
	if err := cache.Set(known); err != nil {
		log.Warnf("write version cache: %s", err)
	}

	return v, nil
}
