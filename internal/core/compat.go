// Package core holds small host introspection helpers shared by the
// command surface.
package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// releaseNames maps macOS major versions to their marketing names.
var releaseNames = map[int]string{
	11: "Big Sur",
	12: "Monterey",
	13: "Ventura",
	14: "Sonoma",
	15: "Sequoia",
	26: "Tahoe",
}

// MacOSVersion returns the major and minor version numbers of the
// running macOS release, e.g. 15 and 3 for "15.3.1".
func MacOSVersion() (major, minor int, err error) {
	info, err := host.Info()
	if err != nil {
		return 0, 0, fmt.Errorf("read host info: %w", err)
	}
	parts := strings.Split(info.PlatformVersion, ".")
	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("unrecognized platform version %q", info.PlatformVersion)
	}
	if len(parts) > 1 {
		minor, _ = strconv.Atoi(parts[1])
	}
	return major, minor, nil
}

// MacOSVersionString returns a human-readable version of the running
// release, e.g. "macOS 15.3 Sequoia". Falls back to the raw platform
// string when the version does not parse.
func MacOSVersionString() string {
	major, minor, err := MacOSVersion()
	if err != nil {
		info, infoErr := host.Info()
		if infoErr != nil {
			return "macOS"
		}
		return fmt.Sprintf("macOS %s", info.PlatformVersion)
	}
	if name, ok := releaseNames[major]; ok {
		return fmt.Sprintf("macOS %d.%d %s", major, minor, name)
	}
	return fmt.Sprintf("macOS %d.%d", major, minor)
}
