// Package commands implements mutaplan's CLI commands.
package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/mutaplan/internal/adapters/idgen"
	"github.com/satishbabariya/mutaplan/internal/adapters/metrics"
	"github.com/satishbabariya/mutaplan/internal/cliargs"
	"github.com/satishbabariya/mutaplan/internal/config"
	"github.com/satishbabariya/mutaplan/internal/core/planner"
	"github.com/satishbabariya/mutaplan/internal/core/planner/domain"
	coreschema "github.com/satishbabariya/mutaplan/internal/core/schema"
	"github.com/satishbabariya/mutaplan/internal/debug"
)

// NewPlanCommand creates the `plan` command: a dry-run harness that
// loads a JSON schema + single write request and prints the mutaction
// vector the planner would emit, playing the role the teacher's
// `cli/commands` play for the rest of prisma-go — a thin CLI over an
// otherwise pure core.
func NewPlanCommand() *cobra.Command {
	var docPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan the mutaction vector for a single write request",
		Long:  "Reads a JSON document describing a schema and one top-level create/update/upsert/delete request, and prints the ordered mutaction vector the planner would emit for it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(docPath)
		},
	}

	cmd.Flags().StringVarP(&docPath, "file", "f", "", "path to the plan document JSON file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runPlan(path string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	debug.Init(cfg.Debug)

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading plan document: %w", err)
	}

	doc, err := cliargs.ParsePlanDoc(raw)
	if err != nil {
		return err
	}

	resolved, err := doc.Resolve()
	if err != nil {
		return fmt.Errorf("resolving schema/root: %w", err)
	}

	sink := newMetricsSink(cfg)
	p := planner.New(coreschema.NewReader(resolved.Schema), idgen.New(), sink)

	projectID := doc.ProjectID
	if projectID == "" {
		projectID = cfg.ProjectID
	}

	mutactions, err := plan(p, doc, resolved, projectID)
	if err != nil {
		return err
	}

	printMutactions(mutactions)
	return nil
}

func newMetricsSink(cfg *config.Config) metrics.Sink {
	if cfg.MetricsBackend == config.MetricsPrometheus {
		return metrics.NewPrometheusSink(prometheusRegisterer())
	}
	return metrics.NoopSink{}
}

func plan(p *planner.Planner, doc cliargs.PlanDoc, r cliargs.Resolved, projectID string) ([]domain.Mutaction, error) {
	switch doc.Operation {
	case "create":
		args, err := doc.ParseArgs(r)
		if err != nil {
			return nil, err
		}
		return p.ForCreate(projectID, r.RootPath, args)

	case "update":
		args, err := doc.ParseArgs(r)
		if err != nil {
			return nil, err
		}
		return p.ForUpdate(projectID, r.RootPath, args, doc.PreviousValues)

	case "upsert":
		createWhere, err := doc.CreateWhereSelector(r)
		if err != nil {
			return nil, err
		}
		updatedWhere, err := doc.UpdatedWhereSelector(r)
		if err != nil {
			return nil, err
		}
		createArgs, err := doc.ParseCreateArgs(r)
		if err != nil {
			return nil, err
		}
		updateArgs, err := doc.ParseUpdateArgs(r)
		if err != nil {
			return nil, err
		}
		return p.ForUpsert(projectID, r.RootPath, createWhere, updatedWhere, createArgs, updateArgs)

	case "delete":
		return p.ForDelete(projectID, r.RootPath, doc.PreviousValues)

	case "cascade":
		return p.CascadingDelete(projectID, r.RootPath)

	default:
		return nil, fmt.Errorf("unknown operation %q (want create/update/upsert/delete/cascade)", doc.Operation)
	}
}

// printMutactions renders one line per mutaction, colored by kind:
// creates green, deletes red, probes dim, relation links cyan, and
// updates uncolored.
func printMutactions(mutactions []domain.Mutaction) {
	createColor := color.New(color.FgGreen, color.Bold)
	deleteColor := color.New(color.FgRed, color.Bold)
	probeColor := color.New(color.FgWhite, color.Faint)
	linkColor := color.New(color.FgCyan)

	for i, m := range mutactions {
		line := fmt.Sprintf("%3d. %-34s %s", i+1, m.Kind.String(), m.Path.String())
		switch m.Kind {
		case domain.CreateDataItem, domain.UpsertDataItem, domain.UpsertDataItemIfInRelationWith:
			createColor.Println(line)
		case domain.DeleteDataItem, domain.DeleteDataItemNested, domain.CascadingDeleteRelationMutactions:
			deleteColor.Println(line)
		case domain.VerifyWhere, domain.VerifyConnection, domain.DeleteRelationCheck:
			probeColor.Println(line)
		case domain.NestedCreateRelation, domain.NestedConnectRelation, domain.NestedDisconnectRelation:
			linkColor.Println(line)
		default:
			fmt.Println(line)
		}
	}
}
