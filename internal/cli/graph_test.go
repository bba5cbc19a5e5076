package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph(t *testing.T) {
	var out bytes.Buffer
	err := Graph(GraphOptions{
		Definition: exampleDefinition,
		Data:       exampleData,
		Out:        &out,
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, `details["Details"]`)
	assert.Contains(t, text, "details --> containers")
	assert.Contains(t, text, `containers -. "hidden" .-> advanced`)
	assert.Contains(t, text, "class advanced hidden;")
	assert.Contains(t, text, "class details current;")
}
