// Package testutil builds throwaway deployer environments for tests.
//
// Key components:
//   - Environment: target, state and data dirs on a memory or temp-dir FS
//   - Fixture contents for the built-in dialects (openmw.cfg, plugins.txt)
//   - File assertions that compare external files line by line
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; use EnvIsolated only to exercise the OS filesystem
//   - Define test data inline; every test gets its own environment
package testutil
