package main

import (
	"context"
	"fmt"
	"os"

	"wranglecli/internal/config"
	"wranglecli/internal/dataframe"
	"wranglecli/internal/infrastructure"
	"wranglecli/internal/pipeline"
	"wranglecli/internal/tableio"
)

// Frame names shared between stages.
const (
	frameEmployees    = "employees"
	frameDepartments  = "departments"
	frameCompleteRows = "complete_rows"
	frameFiltered     = "filtered"
	frameMerged       = "merged"
	framePivot        = "pivot"
	frameMelted       = "melted"
	frameCityMeans    = "city_means"
	frameSample       = "sample"
)

// buildStages assembles the full wrangling walkthrough in execution order.
// Every stage narrates its result on stdout; diagnostics go to the logger.
func buildStages(cfg *config.Config) []pipeline.Stage {
	return []pipeline.Stage{
		loadStage(),
		fillMissingStage(),
		dedupStage(),
		renameStage(),
		castStage(),
		filterStage(),
		taxStage(),
		encodeCityStage(),
		binAgeStage(),
		mergeStage(),
		reshapeStage(),
		groupStage(),
		outlierStage(),
		datesStage(),
		sampleStage(cfg.Sample),
		persistStage(cfg.Output),
	}
}

func printTable(title string, df *dataframe.DataFrame) {
	fmt.Printf("\n%s\n%s", title, df)
}

// loadStage builds the employee and department tables from literal columns.
// Age and Salary each carry one missing cell for the cleaning stages to find.
func loadStage() pipeline.Stage {
	return pipeline.NewStage("load", "build employee and department tables", func(ctx context.Context, state *pipeline.State) error {
		ages, err := dataframe.NewNullableFloats("Age",
			[]float64{25, 0, 35, 40, 28},
			[]bool{true, false, true, true, true})
		if err != nil {
			return err
		}
		salaries, err := dataframe.NewNullableFloats("Salary",
			[]float64{50000, 60000, 70000, 80000, 0},
			[]bool{true, true, true, true, false})
		if err != nil {
			return err
		}

		employees, err := dataframe.New(
			dataframe.NewStrings("Name", []string{"Alice", "Bob", "Charlie", "David", "Emma"}),
			ages,
			dataframe.NewStrings("City", []string{"New York", "Los Angeles", "Chicago", "Chicago", "New York"}),
			salaries,
		)
		if err != nil {
			return err
		}

		departments, err := dataframe.New(
			dataframe.NewStrings("Employee Name", []string{"Alice", "Bob", "Charlie"}),
			dataframe.NewStrings("Department", []string{"HR", "IT", "Finance"}),
		)
		if err != nil {
			return err
		}

		state.SetFrame(frameEmployees, employees)
		state.SetFrame(frameDepartments, departments)

		printTable("Initial data:", employees)
		fmt.Println("\nData info:")
		employees.Info(os.Stdout)

		infrastructure.InfoContext(ctx, "frames_loaded",
			"employees", employees.NumRows(), "departments", departments.NumRows())
		return nil
	})
}

// fillMissingStage counts missing cells, fills Age with the column mean and
// Salary with the column median, and keeps a separate complete-rows view.
func fillMissingStage() pipeline.Stage {
	return pipeline.NewStage("fill_missing", "fill missing values", func(ctx context.Context, state *pipeline.State) error {
		df, err := state.Frame(frameEmployees)
		if err != nil {
			return err
		}

		fmt.Println("\nMissing values per column:")
		for _, c := range df.NullCounts() {
			fmt.Printf("  %s: %d\n", c.Column, c.Nulls)
			if c.Nulls > 0 {
				infrastructure.WarnContext(ctx, "missing_values_detected",
					"column", c.Column, "nulls", c.Nulls)
			}
		}

		if err := df.FillNA("Age", dataframe.FillMean); err != nil {
			return err
		}
		if err := df.FillNA("Salary", dataframe.FillMedian); err != nil {
			return err
		}
		printTable("After filling missing values:", df)

		complete := df.DropNA()
		state.SetFrame(frameCompleteRows, complete)
		printTable("Rows with no missing values:", complete)
		return nil
	})
}

// dedupStage appends a copy of an existing row to a scratch view, shows the
// detected duplicate, and removes it. The main table is left untouched.
func dedupStage() pipeline.Stage {
	return pipeline.NewStage("dedup", "detect and remove duplicate rows", func(ctx context.Context, state *pipeline.State) error {
		df, err := state.Frame(frameEmployees)
		if err != nil {
			return err
		}

		row, err := df.Row(1)
		if err != nil {
			return err
		}
		withDup, err := df.AppendRow(row)
		if err != nil {
			return err
		}

		printTable("With a duplicate appended:", withDup)
		fmt.Printf("\nDuplicate row indexes: %v\n", withDup.Duplicated())

		deduped := withDup.DropDuplicates()
		printTable("After removing duplicates:", deduped)

		infrastructure.InfoContext(ctx, "duplicates_removed",
			"before", withDup.NumRows(), "after", deduped.NumRows())
		return nil
	})
}

func renameStage() pipeline.Stage {
	return pipeline.NewStage("rename", "rename columns", func(ctx context.Context, state *pipeline.State) error {
		df, err := state.Frame(frameEmployees)
		if err != nil {
			return err
		}

		if err := df.Rename(map[string]string{
			"Name":   "Employee Name",
			"Salary": "Annual Salary",
		}); err != nil {
			return err
		}
		printTable("Renamed columns:", df)
		return nil
	})
}

// castStage truncates the filled Age column to integers and pins the salary
// column to floating point.
func castStage() pipeline.Stage {
	return pipeline.NewStage("cast", "cast column types", func(ctx context.Context, state *pipeline.State) error {
		df, err := state.Frame(frameEmployees)
		if err != nil {
			return err
		}

		if err := df.Cast("Age", dataframe.DTypeInt); err != nil {
			return err
		}
		if err := df.Cast("Annual Salary", dataframe.DTypeFloat); err != nil {
			return err
		}

		fmt.Println("\nColumn types after casting:")
		df.Info(os.Stdout)
		return nil
	})
}

func filterStage() pipeline.Stage {
	return pipeline.NewStage("filter", "filter employees older than 30", func(ctx context.Context, state *pipeline.State) error {
		df, err := state.Frame(frameEmployees)
		if err != nil {
			return err
		}

		over30, err := df.Filter("Age", dataframe.GreaterThan(30))
		if err != nil {
			return err
		}
		state.SetFrame(frameFiltered, over30)
		printTable("Employees older than 30:", over30)

		infrastructure.InfoContext(ctx, "rows_filtered",
			"matched", over30.NumRows(), "total", df.NumRows())
		return nil
	})
}

func taxStage() pipeline.Stage {
	return pipeline.NewStage("tax", "derive salary after tax", func(ctx context.Context, state *pipeline.State) error {
		df, err := state.Frame(frameEmployees)
		if err != nil {
			return err
		}

		// Flat 20% deduction.
		if err := df.ApplyFloat("Salary After Tax", "Annual Salary", func(v float64) float64 {
			return v * 0.8
		}); err != nil {
			return err
		}
		printTable("Salary after tax:", df)
		return nil
	})
}

func encodeCityStage() pipeline.Stage {
	return pipeline.NewStage("encode_city", "encode cities as integer codes", func(ctx context.Context, state *pipeline.State) error {
		df, err := state.Frame(frameEmployees)
		if err != nil {
			return err
		}

		if err := df.EncodeCategorical("City Code", "City"); err != nil {
			return err
		}
		printTable("Encoded city column:", df)
		return nil
	})
}

func binAgeStage() pipeline.Stage {
	return pipeline.NewStage("bin_age", "bin ages into groups", func(ctx context.Context, state *pipeline.State) error {
		df, err := state.Frame(frameEmployees)
		if err != nil {
			return err
		}

		if err := df.Cut("Age Group", "Age",
			[]float64{0, 25, 35, 50},
			[]string{"Young", "Adult", "Senior"}); err != nil {
			return err
		}
		printTable("Binned age groups:", df)
		return nil
	})
}

// mergeStage left-joins the department table; employees without a department
// row keep a missing Department cell. The joined view is kept separate.
func mergeStage() pipeline.Stage {
	return pipeline.NewStage("merge", "merge with departments", func(ctx context.Context, state *pipeline.State) error {
		df, err := state.Frame(frameEmployees)
		if err != nil {
			return err
		}
		departments, err := state.Frame(frameDepartments)
		if err != nil {
			return err
		}

		merged, err := df.Merge(departments, "Employee Name")
		if err != nil {
			return err
		}
		state.SetFrame(frameMerged, merged)
		printTable("Merged with departments:", merged)
		return nil
	})
}

func reshapeStage() pipeline.Stage {
	return pipeline.NewStage("reshape", "pivot and melt", func(ctx context.Context, state *pipeline.State) error {
		df, err := state.Frame(frameEmployees)
		if err != nil {
			return err
		}

		pivot, err := df.PivotTable("Age Group", "Annual Salary", dataframe.AggMean)
		if err != nil {
			return err
		}
		state.SetFrame(framePivot, pivot)
		printTable("Average salary by age group:", pivot)

		melted, err := df.Melt([]string{"Employee Name"}, []string{"Age", "Annual Salary"})
		if err != nil {
			return err
		}
		state.SetFrame(frameMelted, melted)
		printTable("Melted table:", melted)

		infrastructure.DebugContext(ctx, "reshaped",
			"pivot_rows", pivot.NumRows(), "melted_rows", melted.NumRows())
		return nil
	})
}

func groupStage() pipeline.Stage {
	return pipeline.NewStage("group_by_city", "average salary by city", func(ctx context.Context, state *pipeline.State) error {
		df, err := state.Frame(frameEmployees)
		if err != nil {
			return err
		}

		byCity, err := df.GroupBy("City").Aggregate("Annual Salary", dataframe.AggMean)
		if err != nil {
			return err
		}
		state.SetFrame(frameCityMeans, byCity)
		printTable("Average salary by city:", byCity)
		return nil
	})
}

// outlierStage fences the salary column at 1.5 IQR and overwrites anything
// outside the fences with the pre-replacement median.
func outlierStage() pipeline.Stage {
	return pipeline.NewStage("outliers", "replace salary outliers", func(ctx context.Context, state *pipeline.State) error {
		df, err := state.Frame(frameEmployees)
		if err != nil {
			return err
		}

		report, err := df.ReplaceOutliers("Annual Salary")
		if err != nil {
			return err
		}

		fmt.Printf("\nSalary outlier fences: [%.2f, %.2f]\n", report.Bounds.Lower, report.Bounds.Upper)
		if len(report.Outliers) == 0 {
			fmt.Println("No outliers detected.")
		} else {
			for _, o := range report.Outliers {
				fmt.Printf("  row %d: %.2f replaced with %.2f\n", o.Row, o.Value, report.Replacement)
			}
		}
		printTable("After replacing outliers:", df)

		infrastructure.InfoContext(ctx, "outliers_replaced",
			"column", report.Column, "count", len(report.Outliers))
		return nil
	})
}

// datesStage attaches join dates as text, parses them into a date column, and
// extracts the calendar year.
func datesStage() pipeline.Stage {
	return pipeline.NewStage("dates", "parse join dates", func(ctx context.Context, state *pipeline.State) error {
		df, err := state.Frame(frameEmployees)
		if err != nil {
			return err
		}

		if err := df.AddColumn(dataframe.NewStrings("Join Date", []string{
			"2023-01-15", "2022-06-10", "2021-12-05", "2020-03-22", "2019-07-10",
		})); err != nil {
			return err
		}
		if err := df.ParseDates("Join Date", "Join Date"); err != nil {
			return err
		}
		if err := df.ExtractYear("Year Joined", "Join Date"); err != nil {
			return err
		}
		printTable("Join dates and years:", df)
		return nil
	})
}

func sampleStage(cfg config.SampleConfig) pipeline.Stage {
	return pipeline.NewStage("sample", "draw a seeded preview sample", func(ctx context.Context, state *pipeline.State) error {
		df, err := state.Frame(frameEmployees)
		if err != nil {
			return err
		}

		sample, err := df.Sample(cfg.Size, cfg.Seed)
		if err != nil {
			return err
		}
		state.SetFrame(frameSample, sample)
		printTable("Random sample:", sample)

		infrastructure.DebugContext(ctx, "sample_drawn",
			"rows", sample.NumRows(), "seed", cfg.Seed)
		return nil
	})
}

// persistStage writes the cleaned table to every configured output.
func persistStage(cfg config.OutputConfig) pipeline.Stage {
	return pipeline.NewStage("persist", "write the cleaned table", func(ctx context.Context, state *pipeline.State) error {
		df, err := state.Frame(frameEmployees)
		if err != nil {
			return err
		}

		logger := infrastructure.WithFields(infrastructure.LoggerWithContext(ctx), map[string]interface{}{
			"rows":    df.NumRows(),
			"columns": df.NumCols(),
		})

		fmt.Println()
		if cfg.CSVPath != "" {
			if err := tableio.WriteCSV(df, cfg.CSVPath); err != nil {
				return err
			}
			logger.InfoContext(ctx, "csv_written", "path", cfg.CSVPath)
			fmt.Printf("Wrote %s\n", cfg.CSVPath)
		}
		if cfg.ArrowPath != "" {
			if err := tableio.WriteArrow(df, cfg.ArrowPath); err != nil {
				return err
			}
			logger.InfoContext(ctx, "arrow_written", "path", cfg.ArrowPath)
			fmt.Printf("Wrote %s\n", cfg.ArrowPath)
		}
		if cfg.ExcelPath != "" {
			if err := tableio.WriteExcel(df, cfg.ExcelPath); err != nil {
				return err
			}
			logger.InfoContext(ctx, "excel_written", "path", cfg.ExcelPath)
			fmt.Printf("Wrote %s\n", cfg.ExcelPath)
		}
		if cfg.SQLitePath != "" {
			if err := tableio.WriteSQLite(ctx, df, cfg.SQLitePath, cfg.SQLiteTable); err != nil {
				return err
			}
			logger.InfoContext(ctx, "sqlite_written", "path", cfg.SQLitePath, "table", cfg.SQLiteTable)
			fmt.Printf("Wrote table %s to %s\n", cfg.SQLiteTable, cfg.SQLitePath)
		}

		fmt.Println("\nData saved successfully.")
		return nil
	})
}
