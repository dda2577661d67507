package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSink_ConcurrentAdds(t *testing.T) {
	sink := NewSink()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink.Add(Row{StudentName: fmt.Sprintf("Student %02d", i)})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, sink.Len())

	rows := sink.Drain(SortByIdentity)
	require.Len(t, rows, 50)
	for i, row := range rows {
		assert.Equal(t, fmt.Sprintf("Student %02d", i), row.StudentName)
	}
}

func TestSink_DrainSortByName(t *testing.T) {
	sink := NewSink()
	sink.Add(Row{LastName: "Watson", FirstName: "Mary", StudentName: "Mary Watson"})
	sink.Add(Row{LastName: "Adams", FirstName: "Zoe", StudentName: "Zoe Adams"})
	sink.Add(Row{LastName: "Adams", FirstName: "Alan", StudentName: "Alan Adams"})

	rows := sink.Drain(SortByName)
	require.Len(t, rows, 3)
	assert.Equal(t, "Alan Adams", rows[0].StudentName)
	assert.Equal(t, "Zoe Adams", rows[1].StudentName)
	assert.Equal(t, "Mary Watson", rows[2].StudentName)
}

func TestSink_DrainIsIndependentOfArrivalOrder(t *testing.T) {
	forward := NewSink()
	backward := NewSink()
	names := []string{"Carol", "Alice", "Bob"}
	for _, n := range names {
		forward.Add(Row{StudentName: n})
	}
	for i := len(names) - 1; i >= 0; i-- {
		backward.Add(Row{StudentName: names[i]})
	}

	assert.Equal(t, forward.Drain(SortByIdentity), backward.Drain(SortByIdentity))
}

func TestParseSortKey(t *testing.T) {
	key, ok := ParseSortKey("name")
	assert.True(t, ok)
	assert.Equal(t, SortByName, key)

	key, ok = ParseSortKey("identity")
	assert.True(t, ok)
	assert.Equal(t, SortByIdentity, key)

	_, ok = ParseSortKey("score")
	assert.False(t, ok)
}

func TestWriter_WriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	rows := []Row{
		{
			LastName:          "Smith",
			FirstName:         "John",
			FinalScore:        "90/100",
			ExtraCredit:       "No extra credit awarded",
			CodeQuality:       "Clean",
			OverallAssessment: "Nice work, with\na multi-line note",
			StudentName:       "John Smith",
		},
	}

	require.NoError(t, NewWriter().Write(path, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, header, records[0])
	assert.Equal(t, "Smith", records[1][0])
	assert.Equal(t, "John", records[1][1])
	assert.Equal(t, "90/100", records[1][2])
	// Embedded newlines survive the round trip.
	assert.Equal(t, "Nice work, with\na multi-line note", records[1][7])
}

func TestWriter_HeaderOnlyForNoRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, NewWriter().Write(path, nil))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, header, records[0])
}
