package locate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rulesweep/internal/config"
)

// isolate points every lookup source at empty temp locations so tests
// only see the candidates they set up themselves.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvStorePath, "")
	t.Setenv(EnvDataPath, "")
	config.ResetCache()
	t.Cleanup(config.ResetCache)
}

func TestNormalizeTrimsWhitespace(t *testing.T) {
	got := Normalize("  /data/client.db  ")
	if got != "/data/client.db" {
		t.Errorf("Normalize() = %q, want %q", got, "/data/client.db")
	}
}

func TestNormalizeAppendsFileName(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		path string
		want string
	}{
		{"existing directory", tmpDir, filepath.Join(tmpDir, StoreFileName)},
		{"trailing separator", tmpDir + string(os.PathSeparator), filepath.Join(tmpDir, StoreFileName)},
		{"missing path without extension", filepath.Join(tmpDir, "nope"), filepath.Join(tmpDir, "nope", StoreFileName)},
		{"missing path with extension", filepath.Join(tmpDir, "nope.db"), filepath.Join(tmpDir, "nope.db")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.path); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNormalizeExistingFileKept(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "store") // no extension, but exists as a file
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	if got := Normalize(file); got != file {
		t.Errorf("Normalize(%q) = %q, want unchanged", file, got)
	}
}

func TestNormalizeExpandsTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got, want := Normalize("~"), filepath.Join(home, StoreFileName); got != want {
		t.Errorf("Normalize(~) = %q, want %q", got, want)
	}
	if got, want := Normalize("~/sub.db"), filepath.Join(home, "sub.db"); got != want {
		t.Errorf("Normalize(~/sub.db) = %q, want %q", got, want)
	}
}

func TestNormalizeExpandsEnvReferences(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("RULESWEEP_TEST_DIR", tmpDir)

	got := Normalize("$RULESWEEP_TEST_DIR")
	want := filepath.Join(tmpDir, StoreFileName)
	if got != want {
		t.Errorf("Normalize($RULESWEEP_TEST_DIR) = %q, want %q", got, want)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	tmpDir := t.TempDir()

	inputs := []string{
		tmpDir,
		tmpDir + "/",
		"  " + filepath.Join(tmpDir, "some.db") + "  ",
		"~",
		"~/deep/store.db",
		filepath.Join(tmpDir, "missing"),
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestCandidatesPriorityOrder(t *testing.T) {
	isolate(t)
	tmpDir := t.TempDir()

	explicit := filepath.Join(tmpDir, "explicit.db")
	envPath := filepath.Join(tmpDir, "env.db")
	t.Setenv(EnvStorePath, envPath)

	got := Candidates(explicit)
	if len(got) < 2 {
		t.Fatalf("Candidates() = %v, want explicit and env entries first", got)
	}
	if got[0] != explicit {
		t.Errorf("first candidate = %q, want explicit %q", got[0], explicit)
	}
	if got[1] != envPath {
		t.Errorf("second candidate = %q, want env %q", got[1], envPath)
	}
}

func TestCandidatesDedupCaseInsensitiveFirstWins(t *testing.T) {
	isolate(t)
	tmpDir := t.TempDir()

	explicit := filepath.Join(tmpDir, "Store.DB")
	t.Setenv(EnvStorePath, filepath.Join(tmpDir, "store.db"))

	got := Candidates(explicit)
	count := 0
	for _, c := range got {
		if strings.EqualFold(c, explicit) {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("Candidates() = %v, want one entry for %q", got, explicit)
	}
	if got[0] != explicit {
		t.Errorf("first candidate = %q, want explicit casing %q preserved", got[0], explicit)
	}
}

func TestCandidatesEnvAlias(t *testing.T) {
	isolate(t)
	aliasPath := filepath.Join(t.TempDir(), "alias.db")
	t.Setenv(EnvDataPath, aliasPath)

	got := Candidates("")
	if len(got) == 0 || got[0] != aliasPath {
		t.Errorf("Candidates() = %v, want alias %q first", got, aliasPath)
	}
}

func TestCandidatesConfigStorePath(t *testing.T) {
	isolate(t)

	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	cfgDir := filepath.Join(cfgHome, config.ConfigDir)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	storeDir := t.TempDir()
	content := "store_path: " + storeDir + "\n"
	if err := os.WriteFile(filepath.Join(cfgDir, config.ConfigFile), []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	config.ResetCache()

	got := Candidates("")
	want := filepath.Join(storeDir, StoreFileName)
	if len(got) == 0 || got[0] != want {
		t.Errorf("Candidates() = %v, want config path %q first", got, want)
	}
}

func TestCandidatesSettingsRedirect(t *testing.T) {
	isolate(t)

	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	clientDir := filepath.Join(cfgHome, ClientDirName)
	if err := os.MkdirAll(clientDir, 0755); err != nil {
		t.Fatalf("creating client dir: %v", err)
	}

	redirected := t.TempDir()
	ini := "SomeOtherKey = 1\nFullPath = " + redirected + "\n"
	if err := os.WriteFile(filepath.Join(clientDir, SettingsFileName), []byte(ini), 0644); err != nil {
		t.Fatalf("writing settings: %v", err)
	}

	got := Candidates("")
	want := filepath.Join(redirected, StoreFileName)
	if len(got) != 1 || got[0] != want {
		t.Errorf("Candidates() = %v, want redirected default %q", got, want)
	}
}

func TestSettingsFullPath(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain", "FullPath = /data/client\n", "/data/client"},
		{"case insensitive key", "fullpath=/data/client\n", "/data/client"},
		{"other lines ignored", "Theme = dark\nFullPath = /data/client\n", "/data/client"},
		{"empty value ignored", "FullPath =\n", ""},
		{"no override", "Theme = dark\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, "storage.ini")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("writing settings: %v", err)
			}
			if got := settingsFullPath(path); got != tt.want {
				t.Errorf("settingsFullPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSettingsFullPathMissingFile(t *testing.T) {
	if got := settingsFullPath(filepath.Join(t.TempDir(), "storage.ini")); got != "" {
		t.Errorf("settingsFullPath() = %q for missing file, want empty", got)
	}
}

func TestResolveExplicitDirectory(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	file := filepath.Join(dir, StoreFileName)
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("writing store file: %v", err)
	}

	got, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != file {
		t.Errorf("Resolve() = %q, want %q", got, file)
	}
}

func TestResolveNotFound(t *testing.T) {
	isolate(t)

	_, err := Resolve(filepath.Join(t.TempDir(), "missing.db"))
	if err == nil {
		t.Fatal("Resolve() error = nil, want NotFoundError")
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Resolve() error = %T, want *NotFoundError", err)
	}
	if len(notFound.Checked) == 0 {
		t.Error("NotFoundError.Checked is empty, want every checked location")
	}
}
