package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/lpnmatch/internal/api"
	"github.com/jackzampolin/lpnmatch/internal/document"
	"github.com/jackzampolin/lpnmatch/internal/extract"
)

// inspection is what inspect reports for one PDF.
type inspection struct {
	document.Info `yaml:",inline"`

	TextPages int      `json:"text_pages" yaml:"text_pages"`
	LPNs      []string `json:"lpns" yaml:"lpns"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
}

type inspections []inspection

func (in inspections) TableHeader() []string {
	return []string{"DOCUMENT", "PAGES", "VALID", "WITH TEXT", "LPNS", "PROBLEM"}
}

func (in inspections) TableRows() [][]string {
	rows := make([][]string, 0, len(in))
	for _, i := range in {
		problem := i.Problem
		if i.Error != "" {
			problem = i.Error
		}
		rows = append(rows, []string{
			i.Name,
			strconv.Itoa(i.PageCount),
			strconv.FormatBool(i.Valid),
			strconv.Itoa(i.TextPages),
			strings.Join(i.LPNs, " "),
			problem,
		})
	}
	return rows
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <receipt.pdf|dir>...",
	Short: "Show the structure and LPNs of receipt PDFs",
	Long: `Inspect receipt PDFs before matching.

For every PDF this validates the file structure, counts pages, and lists
the LPNs the matcher would find in it. Scanned PDFs with no text layer
show zero text pages and no LPNs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, mgr, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(mgr.Get(), cmd.ErrOrStderr())

		paths, err := expandPDFs(args)
		if err != nil {
			return err
		}

		out := make(inspections, 0, len(paths))
		for _, path := range paths {
			info, err := document.InspectFile(path)
			if err != nil {
				return err
			}

			ex := &extract.Extractor{Logger: logger}
			ids, report := ex.Extract([]document.Source{document.File(path)})
			stats := report.Documents[0]

			in := inspection{
				Info:      info,
				TextPages: stats.PagesWithText,
				LPNs:      ids.Sorted(),
				Error:     stats.Error,
			}
			if in.LPNs == nil {
				in.LPNs = []string{}
			}
			out = append(out, in)
		}

		if api.GetOutputFormat() == api.OutputFormatTable {
			_, err := fmt.Println(api.RenderTable(out.TableHeader(), out.TableRows(), "PAGES", "WITH TEXT"))
			return err
		}
		return api.Output(out)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
