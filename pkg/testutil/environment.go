// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate deployer test environments

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/alekulyn/limo/pkg/filesystem"
	"github.com/alekulyn/limo/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// Environment holds the directories a deployer works with.
type Environment struct {
	FS        types.FS
	Root      string
	TargetDir string
	StateDir  string
	DataDir   string
	Type      EnvType

	t *testing.T
}

// NewEnvironment creates the target, state and data dirs.
func NewEnvironment(t *testing.T, envType EnvType) *Environment {
	t.Helper()

	env := &Environment{t: t, Type: envType}
	switch envType {
	case EnvIsolated:
		env.FS = filesystem.NewOS()
		env.Root = t.TempDir()
	default:
		env.FS = filesystem.NewMemory()
		env.Root = "/limo-test"
	}
	env.TargetDir = filepath.Join(env.Root, "target")
	env.StateDir = filepath.Join(env.Root, "state")
	env.DataDir = filepath.Join(env.Root, "data")

	for _, dir := range []string{env.TargetDir, env.StateDir, env.DataDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	return env
}

// WriteTarget writes a file into the target dir.
func (e *Environment) WriteTarget(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.TargetDir, name)
	if err := e.FS.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// ReadTarget returns the content of a target dir file.
func (e *Environment) ReadTarget(name string) string {
	e.t.Helper()
	path := filepath.Join(e.TargetDir, name)
	data, err := e.FS.ReadFile(path)
	if err != nil {
		e.t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// AddDataFiles creates empty entry files in the data dir.
func (e *Environment) AddDataFiles(names ...string) {
	e.t.Helper()
	for _, name := range names {
		path := filepath.Join(e.DataDir, name)
		if err := e.FS.WriteFile(path, nil, 0644); err != nil {
			e.t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
}

// RemoveDataFile deletes an entry file from the data dir.
func (e *Environment) RemoveDataFile(name string) {
	e.t.Helper()
	if err := e.FS.Remove(filepath.Join(e.DataDir, name)); err != nil {
		e.t.Fatalf("Failed to remove %s: %v", name, err)
	}
}

// StateFile returns the content of a file in the state dir.
func (e *Environment) StateFile(name string) string {
	e.t.Helper()
	data, err := e.FS.ReadFile(filepath.Join(e.StateDir, name))
	if err != nil {
		e.t.Fatalf("Failed to read state file %s: %v", name, err)
	}
	return string(data)
}
