package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/triage/internal/ingest"
	"github.com/crimson-sun/triage/internal/pipeline"
)

var fetchPretty bool

// fetchCmd pulls a work item from the tracker API and extracts a report.
var fetchCmd = &cobra.Command{
	Use:   "fetch <work-item-id>",
	Short: "Fetch a work item from the tracker and extract a report",
	Long: `Fetch a work item from the configured Azure DevOps organization and run
its title, description, repro steps, and acceptance criteria through
extraction.

Requires azure.org_url and azure.token in the config, or the
TRIAGE_AZURE_ORG_URL and TRIAGE_AZURE_TOKEN environment variables.

Examples:
  triage fetch 31415`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchPretty, "pretty", false, "indent JSON output")
}

func runFetch(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("work item id must be numeric: %s", args[0])
	}
	if cfg.Azure.OrgURL == "" || cfg.Azure.Token == "" {
		return fmt.Errorf("fetch requires azure.org_url and azure.token")
	}

	client := ingest.NewClient(cfg.Azure.OrgURL, cfg.Azure.Token)
	payload, err := client.FetchWorkItem(cmd.Context(), id)
	if err != nil {
		return err
	}

	eng, cleanup, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	out, err := buildOutput(cfg, fetchPretty)
	if err != nil {
		return err
	}

	p := pipeline.New(eng, out)
	defer p.Close()

	_, err = p.ProcessWorkItem(cmd.Context(), payload)
	return err
}
