package repo_test

import (
	"os"
	"testing"

	"github.com/travelxplore/site/testutil"
)

// TestMain applies all pending migrations once per test binary so individual
// tests never need to think about schema state.
func TestMain(m *testing.M) {
	testutil.MigrateForMain()
	os.Exit(m.Run())
}
