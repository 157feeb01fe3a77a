package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]int{"rows": 3}))
	assert.Equal(t, "{\n  \"rows\": 3\n}\n", buf.String())
}

func TestWriteJSON_Unsupported(t *testing.T) {
	assert.Error(t, WriteJSON(&bytes.Buffer{}, make(chan int)))
}
