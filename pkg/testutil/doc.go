// Package testutil provides utilities for testing anvil components.
//
// Tests build real template repositories under t.TempDir with CreateFile
// and CreateDir, run the code under test against the OS filesystem, and
// check the result with the assertion helpers. All test data is defined
// inline, not in external fixture files, and each test is isolated with
// no shared state.
package testutil
