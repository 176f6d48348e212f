package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/sql-analyzer/pkg/analyzer"
	"github.com/nsxbet/sql-analyzer/pkg/logger"
	"github.com/nsxbet/sql-analyzer/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] [sql-file]",
	Short: "Analyze a SQL script against the review rules",
	Long: `Analyze a SQL script and report any rule violations found.

SQL is read from stdin when data is piped in; otherwise it is read from
the named file. The report is written to stdout.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Flags for analyze command
	analyzeCmd.Flags().StringP("output", "o", "json", "output format (json, yaml, text)")
	analyzeCmd.Flags().StringP("rules", "r", "", "path to rules configuration file")
	analyzeCmd.Flags().Bool("fail-on-error", false, "exit with non-zero code if errors are found")
	analyzeCmd.Flags().Bool("fail-on-warning", false, "exit with non-zero code if warnings are found")

	// Bind flags to viper
	_ = viper.BindPFlag("output", analyzeCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("rules", analyzeCmd.Flags().Lookup("rules"))
	_ = viper.BindPFlag("fail-on-error", analyzeCmd.Flags().Lookup("fail-on-error"))
	_ = viper.BindPFlag("fail-on-warning", analyzeCmd.Flags().Lookup("fail-on-warning"))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	// Initialize logger
	logLevel := slog.LevelInfo
	if viper.GetBool("debug") {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(logger.NewWithLevel(logLevel).GetSlogLogger())

	// The core never catches its own failures; anything escaping it is
	// reported here as an {error} payload followed by a non-zero exit.
	defer func() {
		if r := recover(); r != nil {
			emitError(errors.Errorf("analysis panic: %v", r))
			os.Exit(1)
		}
	}()

	sqlText, err := loadInput(args)
	if err != nil {
		emitError(err)
		return err
	}
	slog.Debug("SQL input loaded", "size", len(sqlText))

	a := analyzer.New()
	if rulesPath := viper.GetString("rules"); rulesPath != "" {
		if err := a.WithConfig(rulesPath); err != nil {
			err = errors.Wrapf(err, "failed to load rules from %s", rulesPath)
			emitError(err)
			return err
		}
	}

	report := a.Analyze(sqlText)

	if err := outputReport(report, viper.GetString("output")); err != nil {
		emitError(err)
		return err
	}

	if report.HasErrors() && viper.GetBool("fail-on-error") {
		os.Exit(1)
	}
	if report.HasWarnings() && viper.GetBool("fail-on-warning") {
		os.Exit(1)
	}

	return nil
}

// loadInput reads SQL from stdin when piped data is present, otherwise
// from the file argument. Stream input wins over a named file; a missing
// explicit path is a distinguishable not-found error.
func loadInput(args []string) (string, error) {
	if stat, err := os.Stdin.Stat(); err == nil && stat.Mode()&os.ModeCharDevice == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(err, "failed to read stdin")
		}
		if len(data) > 0 {
			return string(data), nil
		}
	}

	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.Wrapf(err, "SQL file not found: %s", args[0])
			}
			return "", errors.Wrapf(err, "failed to read SQL file: %s", args[0])
		}
		return string(data), nil
	}

	return "", nil
}

func outputReport(report *types.Report, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case "yaml":
		encoder := yaml.NewEncoder(os.Stdout)
		defer encoder.Close()
		return encoder.Encode(report)
	case "text":
		return outputText(report)
	default:
		return errors.Errorf("unsupported output format: %s", format)
	}
}

func outputText(report *types.Report) error {
	if report.IsClean() {
		fmt.Println(color.GreenString("✔ %s", report.Summary.Message))
		return nil
	}

	for _, record := range report.Issues {
		for i := range record.RuleIDs {
			level := record.SeverityLevels[i]
			levelColor := color.New(color.FgYellow, color.Bold)
			if level == types.SeverityError {
				levelColor = color.New(color.FgRed, color.Bold)
			}
			fmt.Printf("line %d, column %d: [%s] %s (%s)\n",
				record.Line, record.Columns[i], levelColor.Sprint(level), record.Messages[i], record.RuleIDs[i])
		}
		fmt.Printf("\t%s\n\n", color.CyanString(record.Snippet))
	}

	fmt.Printf("%s found %d issue(s) on %d line(s).\n",
		color.RedString("✘"), report.Summary.TotalIssues, len(report.Issues))
	return nil
}

// emitError writes the {error} payload the calling service expects on any
// caught failure.
func emitError(err error) {
	_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"error": err.Error()})
}
