package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andareed/siftly-digest/timerange"
)

func writeCSV(t *testing.T, path string, records [][]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(records))
	require.NoError(t, f.Close())
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	return records
}

func TestSnapshotRoundTrip(t *testing.T) {
	m, _ := newTestModel(t)
	m.flagCurrent(FlagGood)
	m.addComment("seeing 0.7")
	window := timerange.Range{Start: at(1, 18, 0), End: at(2, 2, 0)}
	m.setSelectedTimeRange(window)

	path := filepath.Join(t.TempDir(), "night.json")
	require.NoError(t, SaveModel(m, path))

	loaded, err := loadModelAuto(path)
	require.NoError(t, err)

	assert.Len(t, loaded.data.rows, 7)
	assert.Equal(t, m.data.flaggedRows, loaded.data.flaggedRows)
	assert.Equal(t, m.data.commentRows, loaded.data.commentRows)
	assert.Equal(t, window, loaded.data.window)
	assert.Equal(t, timerange.FullRange(testNight, testNight), loaded.data.full)
	assert.Equal(t, testNight, loaded.data.source.startDayObs)
	assert.Equal(t, "Simonyi", loaded.data.source.telescope)
	assert.Equal(t, path, loaded.data.source.path)
	assert.Len(t, loaded.data.filteredIndices, 4)
	assert.Equal(t, path, loaded.defaultSaveName())
}

func TestSnapshotWindowOutsideFullFallsBack(t *testing.T) {
	m, _ := newTestModel(t)
	path := filepath.Join(t.TempDir(), "night.json")
	require.NoError(t, SaveModel(m, path))

	loaded := newModel(nil, nil)
	require.NoError(t, LoadModel(loaded, path))
	loaded.data.window = timerange.Range{Start: at(1, 6, 0), End: at(1, 20, 0)}
	loaded.InitialiseUI()

	assert.Equal(t, loaded.data.full, loaded.data.window)
}

func TestSnapshotVersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 1, "rows": []}`), 0o600))

	_, err := loadModelAuto(path)
	assert.ErrorContains(t, err, "snapshot version 1 not supported")
}

func TestExportWritesFilteredRows(t *testing.T) {
	m, _ := newTestModel(t)
	require.NoError(t, m.setFilterPattern("science"))
	m.cursor = 1
	m.addComment("cloudy, thin")

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ExportModel(m, path))

	records := readCSV(t, path)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"exposure name", "obs_start", "exp_time", "band", "exposure_flag", "message_text", "Flag", "Comment"}, records[0])
	assert.Equal(t, "MC_O_20240101_000002", records[1][0])
	assert.Equal(t, []string{"junk", "cloudy, thin"}, records[2][6:])
	assert.Equal(t, []string{"", ""}, records[3][6:])
}

func TestExportEmptyFilterWritesHeaderOnly(t *testing.T) {
	m, _ := newTestModel(t)
	require.NoError(t, m.setFilterPattern("no such exposure"))

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ExportModel(m, path))
	assert.Len(t, readCSV(t, path), 1)
}

func TestMergeAnnotations(t *testing.T) {
	m, _ := newTestModel(t)
	m.flagCurrent(FlagQuestionable)
	m.addComment("check guider")
	path := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, SaveAnnotations(m, path))

	fresh := initialModelFromRecords(testRecords()[:3])
	n, err := MergeAnnotations(fresh, path)
	require.NoError(t, err)

	id := fresh.data.rows[0].id
	assert.Equal(t, 1, n, "only rows present in the fresh load are annotated")
	assert.Equal(t, FlagQuestionable, fresh.data.flaggedRows[id])
	assert.Equal(t, "check guider", fresh.data.commentRows[id])
}

func TestMergeAnnotationsFromSnapshot(t *testing.T) {
	m, _ := newTestModel(t)
	m.addComment("from a full snapshot")
	path := filepath.Join(t.TempDir(), "night.json")
	require.NoError(t, SaveModel(m, path))

	fresh := initialModelFromRecords(testRecords())
	n, err := MergeAnnotations(fresh, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "from a full snapshot", fresh.data.commentRows[fresh.data.rows[0].id])
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "night.csv")
	records := testRecords()
	records[0][0] = "\ufeff" + records[0][0]
	writeCSV(t, path, records)

	m, err := loadModelAuto(path)
	require.NoError(t, err)

	assert.Equal(t, RoleSecondary, m.data.header[0].Role)
	assert.Equal(t, timerange.Range{Start: at(1, 14, 0), End: at(2, 10, 0)}, m.data.full)
	assert.Equal(t, m.data.full, m.data.window)
	assert.Equal(t, "night.csv", m.sourceLabel())
	assert.Equal(t, "night_export.csv", m.defaultExportName())
	assert.Nil(t, m.fetchSummaryCmd(), "offline files have no backend summary")
}

func TestLoadCSVRoundsSubMinuteBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "night.csv")
	writeCSV(t, path, [][]string{
		{"exposure_name", "obs_start"},
		{"a", "2024-01-01 14:00:12.5"},
		{"b", "2024-01-01 15:30:45"},
	})

	m, err := loadModelAuto(path)
	require.NoError(t, err)
	assert.Equal(t, timerange.Range{Start: at(1, 14, 0), End: at(1, 15, 31)}, m.data.full)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := loadModelAuto("night.txt")
	assert.ErrorContains(t, err, "unsupported file extension")
}

func TestEmptyColumnsHidden(t *testing.T) {
	m := initialModelFromRecords([][]string{
		{"exposure_name", "band", "message_text"},
		{"a", "", ""},
	})
	assert.True(t, m.data.header[0].Visible)
	assert.False(t, m.data.header[1].Visible)
	assert.True(t, m.data.header[2].Visible, "free text columns stay visible")
}
