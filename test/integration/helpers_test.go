//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentlink/agentlink/internal/platform"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // AGENTLINK_HOME, the base directory in global mode
	ProjectDir string // a mock project directory
}

// setupTestEnv creates isolated temp directories and points AGENTLINK_HOME at
// one of them so global-mode runs never touch the real home directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if !platform.IsSymlinkSupported() {
		t.Skip("symlinks not supported on this platform")
	}

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("AGENTLINK_HOME", env.HomeDir)
	return env
}

// writeSkill creates a skill directory with a SKILL.md under base/rel.
func writeSkill(t *testing.T, base, rel string) string {
	t.Helper()
	dir := filepath.Join(base, rel)
	writeFile(t, filepath.Join(dir, "SKILL.md"), "---\nname: "+filepath.Base(dir)+"\n---\n")
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected nothing at: %s", path)
	}
}

func assertLinkTo(t *testing.T, link, target string) {
	t.Helper()
	got, err := os.Readlink(link)
	if err != nil {
		t.Errorf("expected symlink at %s: %v", link, err)
		return
	}
	if got != target {
		t.Errorf("link %s points to %s, want %s", link, got, target)
	}
}

func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("expected %s to contain %q", path, substr)
	}
}
