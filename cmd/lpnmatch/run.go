package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/lpnmatch/internal/api"
	"github.com/jackzampolin/lpnmatch/internal/document"
	"github.com/jackzampolin/lpnmatch/internal/extract"
	"github.com/jackzampolin/lpnmatch/internal/match"
	"github.com/jackzampolin/lpnmatch/internal/table"
)

var (
	runTable   string
	runOutDir  string
	runWorkers int
)

// runOutput is printed in yaml/json mode.
type runOutput struct {
	Output    string                  `json:"output" yaml:"output"`
	Summary   match.Summary           `json:"summary" yaml:"summary"`
	Documents []extract.DocumentStats `json:"documents" yaml:"documents"`
}

var runCmd = &cobra.Command{
	Use:   "run --table <report.xlsx> <receipt.pdf|dir>...",
	Short: "Match a receiving report against receipt PDFs locally",
	Long: `Match a receiving report against receipt PDFs without a server.

Directories are expanded to the *.pdf files directly inside them.
The annotated report is written next to the input report, or into
--out-dir, as {report}_RECEIVE_MATCH.xlsx.

Examples:
  lpnmatch run --table received.xlsx receipts/
  lpnmatch run --table received.xlsx a.pdf b.pdf --out-dir out/
  lpnmatch run --table received.xlsx receipts/ -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, mgr, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := mgr.Get()
		logger := newLogger(cfg, os.Stderr)

		workers := cfg.Extract.Workers
		if cmd.Flags().Changed("workers") {
			workers = runWorkers
		}
		outDir := cfg.OutputDir()
		if cmd.Flags().Changed("out-dir") {
			outDir = runOutDir
		}

		res, path, err := runMatch(runTable, args, outDir, match.Options{Workers: workers, Logger: logger})
		if err != nil {
			return err
		}

		if api.GetOutputFormat() != api.OutputFormatTable {
			return api.Output(runOutput{
				Output:    path,
				Summary:   res.Summary,
				Documents: res.Report.Documents,
			})
		}

		fmt.Println(api.RenderTable(res.Report.TableHeader(), res.Report.TableRows(),
			"PAGES", "WITH TEXT", "LPNS"))
		s := res.Summary
		fmt.Printf("%d rows: %d matched, %d unmatched (%d LPNs from %d PDFs, %d skipped)\n",
			s.Rows, s.Matched, s.Unmatched, s.Identifiers, s.Documents, s.Skipped)
		fmt.Printf("Saved %s\n", path)
		return nil
	},
}

// runMatch matches the report at tablePath against the PDFs named by args
// and saves the annotated report into outDir.
func runMatch(tablePath string, args []string, outDir string, opts match.Options) (*match.Result, string, error) {
	pdfs, err := expandPDFs(args)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(tablePath)
	if err != nil {
		return nil, "", &table.ReadError{Err: err}
	}
	defer f.Close()

	res, err := match.Run(match.Request{
		TableName: filepath.Base(tablePath),
		Table:     f,
		Documents: document.Files(pdfs...),
	}, opts)
	if err != nil {
		return nil, "", err
	}

	path, err := res.Save(tablePath, outDir)
	if err != nil {
		return nil, "", err
	}
	return res, path, nil
}

// expandPDFs replaces each directory argument with the sorted *.pdf files
// directly inside it. Anything else, including paths that cannot be
// stat'ed, is kept as given; unreadable files are skipped at extraction.
func expandPDFs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			out = append(out, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
				continue
			}
			found = append(found, filepath.Join(arg, e.Name()))
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no PDF files in %s", arg)
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}

func init() {
	runCmd.Flags().StringVar(&runTable, "table", "", "Receiving report (.xlsx)")
	runCmd.Flags().StringVar(&runOutDir, "out-dir", "", "Directory for the annotated report (default: output.dir, then the report's directory)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "PDFs read concurrently (default: extract.workers)")
	runCmd.MarkFlagRequired("table")

	rootCmd.AddCommand(runCmd)
}
