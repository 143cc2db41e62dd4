package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dirsnap/dirsnap/internal/utils"
)

func TestInitializeConfigurationCreatesLocalFile(t *testing.T) {
	workingDirectory := t.TempDir()
	options := InitOptions{WorkingDirectory: workingDirectory, Target: InitTargetLocal}
	path, initError := InitializeConfiguration(options)
	if initError != nil {
		t.Fatalf("InitializeConfiguration error: %v", initError)
	}
	expectedPath := filepath.Join(workingDirectory, utils.LocalConfigFileName)
	if path != expectedPath {
		t.Fatalf("expected path %s, got %s", expectedPath, path)
	}
	content, readError := os.ReadFile(path)
	if readError != nil {
		t.Fatalf("read config: %v", readError)
	}
	if !strings.Contains(string(content), "snapshot:") {
		t.Fatalf("unexpected configuration content: %s", string(content))
	}
}

func TestInitializeConfigurationHonorsGlobalTarget(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	path, initError := InitializeConfiguration(InitOptions{Target: InitTargetGlobal, Force: true})
	if initError != nil {
		t.Fatalf("InitializeConfiguration error: %v", initError)
	}
	expectedPath := filepath.Join(homeDir, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
	if path != expectedPath {
		t.Fatalf("expected configuration at %s, got %s", expectedPath, path)
	}
	if _, statError := os.Stat(path); statError != nil {
		t.Fatalf("expected file to exist at %s: %v", path, statError)
	}
}

func TestInitializeConfigurationPreventsOverwriteWithoutForce(t *testing.T) {
	workingDirectory := t.TempDir()
	path := filepath.Join(workingDirectory, utils.LocalConfigFileName)
	if writeError := os.WriteFile(path, []byte("existing"), 0o600); writeError != nil {
		t.Fatalf("write seed config: %v", writeError)
	}
	_, initError := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Target: InitTargetLocal, Force: false})
	if initError == nil {
		t.Fatal("expected error when configuration already exists")
	}

	path2, forcedError := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Target: InitTargetLocal, Force: true})
	if forcedError != nil {
		t.Fatalf("expected force to overwrite, got %v", forcedError)
	}
	content, readError := os.ReadFile(path2)
	if readError != nil {
		t.Fatalf("read config: %v", readError)
	}
	if !strings.Contains(string(content), "snapshot:") {
		t.Fatal("expected the default template after a forced init")
	}
}
