package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSnapshot(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	obj := map[string]int{"talon": 6}
	ValidateSnapshot(t, obj)

	b, err := os.ReadFile(filepath.Join("testdata", "TestValidateSnapshot.json"))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"talon":6}`, string(b))

	// the second call compares against the file written above
	ValidateSnapshot(t, obj)
}
