package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/holdings/pkg/models"
)

func TestCSVWriter_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)

	require.NoError(t, w.WriteHeader([]string{"Link", "Sector", "Value(Mn)"}))
	require.NoError(t, w.WriteRows([]models.Row{
		{"https://x/f1/", "Banks, Private", "1,234.5"},
		{"https://x/f1/", "IT", ""},
	}))
	require.NoError(t, w.Close())

	assert.Equal(t,
		"Link,Sector,Value(Mn)\n"+
			"https://x/f1/,\"Banks, Private\",\"1,234.5\"\n"+
			"https://x/f1/,IT,\n",
		buf.String())
	assert.Equal(t, 2, w.Rows())
}

func TestCSVWriter_RejectsWrongWidth(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.WriteHeader([]string{"a", "b"}))

	err := w.WriteRows([]models.Row{{"only-one"}})
	assert.Error(t, err)
	assert.Equal(t, 0, w.Rows())
}

func TestCSVWriter_ConcurrentBatchesStayContiguous(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := CreateCSV(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteHeader([]string{"Link", "N"}))

	const workers, perBatch = 8, 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			batch := make([]models.Row, perBatch)
			for j := range batch {
				batch[j] = models.Row{fmt.Sprintf("link-%d", id), fmt.Sprint(j)}
			}
			assert.NoError(t, w.WriteRows(batch))
		}(i)
	}
	wg.Wait()
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+workers*perBatch)

	// Every batch is a run of perBatch identical links in 0..perBatch-1 order
	for start := 1; start < len(records); start += perBatch {
		link := records[start][0]
		for j := 0; j < perBatch; j++ {
			assert.Equal(t, link, records[start+j][0])
			assert.Equal(t, fmt.Sprint(j), records[start+j][1])
		}
	}
}

func TestCreateCSV_BadPath(t *testing.T) {
	_, err := CreateCSV(filepath.Join(t.TempDir(), "missing", "dir", "out.csv"))
	assert.Error(t, err)
}
