package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wranglecli/internal/config"
	"wranglecli/internal/dataframe"
	"wranglecli/internal/pipeline"
	"wranglecli/internal/tableio"
)

// chdir runs the rest of the test from dir so stage outputs land in a
// throwaway directory.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func runPipeline(t *testing.T, cfg *config.Config) *pipeline.State {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	runner := pipeline.NewRunner(logger, buildStages(cfg)...)
	state, err := runner.Execute(context.Background())
	require.NoError(t, err)
	return state
}

func mustFrame(t *testing.T, state *pipeline.State, name string) *dataframe.DataFrame {
	t.Helper()
	df, err := state.Frame(name)
	require.NoError(t, err)
	return df
}

func intColumn(t *testing.T, df *dataframe.DataFrame, name string) []int64 {
	t.Helper()
	col, err := df.Column(name)
	require.NoError(t, err)
	out := make([]int64, col.Len())
	for i := range out {
		v, ok := col.IntAt(i)
		require.True(t, ok, "column %s row %d is missing", name, i)
		out[i] = v
	}
	return out
}

func floatColumn(t *testing.T, df *dataframe.DataFrame, name string) []float64 {
	t.Helper()
	col, err := df.Column(name)
	require.NoError(t, err)
	out := make([]float64, col.Len())
	for i := range out {
		v, ok := col.FloatAt(i)
		require.True(t, ok, "column %s row %d is missing", name, i)
		out[i] = v
	}
	return out
}

func stringColumn(t *testing.T, df *dataframe.DataFrame, name string) []string {
	t.Helper()
	col, err := df.Column(name)
	require.NoError(t, err)
	out := make([]string, col.Len())
	for i := range out {
		v, ok := col.StringAt(i)
		require.True(t, ok, "column %s row %d is missing", name, i)
		out[i] = v
	}
	return out
}

func TestPipeline_EndToEnd(t *testing.T) {
	chdir(t, t.TempDir())
	cfg := config.Default()

	state := runPipeline(t, cfg)
	df := mustFrame(t, state, frameEmployees)

	assert.Equal(t, []string{
		"Employee Name", "Age", "City", "Annual Salary", "Salary After Tax",
		"City Code", "Age Group", "Join Date", "Year Joined",
	}, df.ColumnNames())
	assert.Equal(t, 5, df.NumRows())

	assert.FileExists(t, "cleaned_data.csv")
	assert.FileExists(t, "cleaned_data.arrow")
	assert.NoFileExists(t, "cleaned_data.xlsx")

	content, err := os.ReadFile("cleaned_data.csv")
	require.NoError(t, err)
	want := `Employee Name,Age,City,Annual Salary,Salary After Tax,City Code,Age Group,Join Date,Year Joined
Alice,25,New York,50000,40000,2,Adult,2023-01-15,2023
Bob,32,Los Angeles,60000,48000,1,Adult,2022-06-10,2022
Charlie,35,Chicago,70000,56000,0,Senior,2021-12-05,2021
David,40,Chicago,80000,64000,0,Senior,2020-03-22,2020
Emma,28,New York,65000,52000,2,Adult,2019-07-10,2019
`
	assert.Equal(t, want, string(content))

	// The Arrow snapshot restores the exact frame.
	fromArrow, err := tableio.ReadArrow("cleaned_data.arrow")
	require.NoError(t, err)
	assert.True(t, df.Equal(fromArrow))

	// The CSV snapshot restores it too, once the two salary columns are
	// pinned back to float (their values are integral, so inference alone
	// would narrow them).
	fromCSV, err := tableio.ReadCSV("cleaned_data.csv", tableio.ReadOptions{
		DTypes: map[string]dataframe.DType{
			"Annual Salary":    dataframe.DTypeFloat,
			"Salary After Tax": dataframe.DTypeFloat,
		},
	})
	require.NoError(t, err)
	assert.True(t, df.Equal(fromCSV))
}

func TestPipeline_WorkedValues(t *testing.T) {
	chdir(t, t.TempDir())
	state := runPipeline(t, config.Default())
	df := mustFrame(t, state, frameEmployees)

	// Mean-filled then truncated ages, median-filled salaries.
	assert.Equal(t, []int64{25, 32, 35, 40, 28}, intColumn(t, df, "Age"))
	assert.Equal(t, []float64{50000, 60000, 70000, 80000, 65000}, floatColumn(t, df, "Annual Salary"))
	assert.Equal(t, []float64{40000, 48000, 56000, 64000, 52000}, floatColumn(t, df, "Salary After Tax"))

	// Lexicographic city codes: Chicago 0, Los Angeles 1, New York 2.
	assert.Equal(t, []int64{2, 1, 0, 0, 2}, intColumn(t, df, "City Code"))

	assert.Equal(t, []string{"Adult", "Adult", "Senior", "Senior", "Adult"}, stringColumn(t, df, "Age Group"))
	assert.Equal(t, []int64{2023, 2022, 2021, 2020, 2019}, intColumn(t, df, "Year Joined"))
}

func TestPipeline_DerivedViews(t *testing.T) {
	chdir(t, t.TempDir())
	cfg := config.Default()
	state := runPipeline(t, cfg)

	complete := mustFrame(t, state, frameCompleteRows)
	assert.Equal(t, 5, complete.NumRows(), "after filling, every row is complete")

	filtered := mustFrame(t, state, frameFiltered)
	assert.Equal(t, []string{"Charlie", "David"}, stringColumn(t, filtered, "Employee Name"))

	merged := mustFrame(t, state, frameMerged)
	assert.Equal(t, 5, merged.NumRows())
	dept, err := merged.Column("Department")
	require.NoError(t, err)
	for i, want := range []string{"HR", "IT", "Finance"} {
		v, ok := dept.StringAt(i)
		require.True(t, ok)
		assert.Equal(t, want, v)
	}
	assert.True(t, dept.IsNull(3), "David has no department row")
	assert.True(t, dept.IsNull(4), "Emma has no department row")

	pivot := mustFrame(t, state, framePivot)
	assert.Equal(t, []string{"Adult", "Senior"}, stringColumn(t, pivot, "Age Group"))
	assert.Equal(t, []float64{175000.0 / 3, 75000}, floatColumn(t, pivot, "Annual Salary"))

	melted := mustFrame(t, state, frameMelted)
	assert.Equal(t, 10, melted.NumRows(), "5 rows x 2 value columns")
	variables := stringColumn(t, melted, "variable")
	assert.Equal(t, "Age", variables[0])
	assert.Equal(t, "Annual Salary", variables[9])

	byCity := mustFrame(t, state, frameCityMeans)
	assert.Equal(t, []string{"Chicago", "Los Angeles", "New York"}, stringColumn(t, byCity, "City"))
	assert.Equal(t, []float64{75000, 60000, 57500}, floatColumn(t, byCity, "Annual Salary"))

	sample := mustFrame(t, state, frameSample)
	assert.Equal(t, cfg.Sample.Size, sample.NumRows())
}

func TestPipeline_SampleSeedIsDeterministic(t *testing.T) {
	chdir(t, t.TempDir())
	cfg := config.Default()
	cfg.Sample.Size = 3

	first := mustFrame(t, runPipeline(t, cfg), frameSample)
	second := mustFrame(t, runPipeline(t, cfg), frameSample)
	assert.True(t, first.Equal(second), "same seed must draw the same sample")
}

func TestPersistStage_OptionalOutputs(t *testing.T) {
	chdir(t, t.TempDir())
	cfg := config.Default()
	cfg.Output.ExcelPath = "cleaned_data.xlsx"
	cfg.Output.SQLitePath = "cleaned_data.db"

	state := runPipeline(t, cfg)
	df := mustFrame(t, state, frameEmployees)

	assert.FileExists(t, "cleaned_data.xlsx")
	assert.FileExists(t, "cleaned_data.db")

	fromDB, err := tableio.ReadSQLite(context.Background(), "cleaned_data.db", cfg.Output.SQLiteTable)
	require.NoError(t, err)
	assert.True(t, df.Equal(fromDB), "SQLite restores the exact frame")
}

func TestPersistStage_DisabledOutputsWriteNothing(t *testing.T) {
	chdir(t, t.TempDir())
	cfg := config.Default()
	cfg.Output.CSVPath = ""
	cfg.Output.ArrowPath = ""

	runPipeline(t, cfg)

	assert.NoFileExists(t, "cleaned_data.csv")
	assert.NoFileExists(t, "cleaned_data.arrow")
}
