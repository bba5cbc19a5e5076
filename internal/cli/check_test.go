package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_Valid(t *testing.T) {
	var out bytes.Buffer
	err := Check(CheckOptions{
		Definition: exampleDefinition,
		Data:       exampleData,
		Config:     Config{Format: "yaml"},
		Out:        &out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Document is valid.")
}

func TestCheck_ReportsErrorsByStep(t *testing.T) {
	data := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(data, []byte(`
metadata:
  name: Web
mode: advanced
spec:
  containers:
    - name: 1nginx
      image: nginx
      port: 70000
`), 0o644))

	var out bytes.Buffer
	err := Check(CheckOptions{
		Definition: exampleDefinition,
		Data:       data,
		Config:     Config{Format: "yaml"},
		Out:        &out,
	})
	require.ErrorIs(t, err, ErrInvalidDocument)
	assert.ErrorContains(t, err, "4 errors")

	text := out.String()
	assert.Contains(t, text, "Details:\n  metadata.name:")
	assert.Contains(t, text, "Containers:\n  spec.containers.0.name:")
	assert.Contains(t, text, "spec.containers.0.port:")
	assert.Contains(t, text, "Advanced:\n  spec.replicas: Mandatory")
}
