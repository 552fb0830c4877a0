package profiles

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// LoadScript reads a behavior script, preferring a disk copy under
// profiles/scripts/ so scripts can be edited without rebuilding.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskProfilePath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

//go:embed *.yaml
var ProfilesFS embed.FS

// Load reads an archetype profile, preferring a disk copy under profiles/
// so tuning edits take effect without rebuilding.
func Load(name string) ([]byte, error) {
	clean := cleanProfilePath(name)
	if data, err := os.ReadFile(diskProfilePath(clean)); err == nil {
		return data, nil
	}
	return ProfilesFS.ReadFile(clean)
}

// ModTime reports the disk copy's modification time, if one exists.
func ModTime(name string) (time.Time, bool) {
	clean := cleanProfilePath(name)
	info, err := os.Stat(diskProfilePath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanProfilePath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "profiles/") {
		return strings.TrimPrefix(s, "profiles/")
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "profiles/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "profiles/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskProfilePath(clean string) string {
	return filepath.Join("profiles", filepath.FromSlash(clean))
}
