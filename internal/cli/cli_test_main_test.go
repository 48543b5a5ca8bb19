package cli_test

import (
	"testing"

	"safeupload.dev/safeupload/testhelpers"
)

func TestMain(m *testing.M) {
	testhelpers.TestMain(m, nil)
}

// getSafeuploadBinary returns the path to the pre-built safeupload binary.
func getSafeuploadBinary(t *testing.T) string {
	t.Helper()
	binaryPath := testhelpers.GetSharedBinaryPath()
	if binaryPath == "" {
		if err := testhelpers.GetBinaryError(); err != nil {
			t.Fatalf("failed to build safeupload binary: %v", err)
		}
		t.Fatal("safeupload binary not built")
	}
	return binaryPath
}
