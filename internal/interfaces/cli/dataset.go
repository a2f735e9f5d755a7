package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/recreation-potential/internal/application/analysis"
	"github.com/turtacn/recreation-potential/internal/bootstrap"
	"github.com/turtacn/recreation-potential/internal/domain/dataset"
	"github.com/turtacn/recreation-potential/internal/infrastructure/datastore"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/recreation-potential/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// validate
// ─────────────────────────────────────────────────────────────────────────────

// ValidationResult summarises a successful dataset check.
type ValidationResult struct {
	Dir        string         `json:"dir"`
	SnapshotID string         `json:"snapshot_id"`
	Counts     dataset.Counts `json:"counts"`
}

func (v ValidationResult) TableHeaders() []string { return []string{"DATASET", "RECORDS"} }

func (v ValidationResult) TableRows() [][]string {
	c := v.Counts
	return [][]string{
		{"population", strconv.Itoa(c.Regions)},
		{"infrastructure", strconv.Itoa(c.Infrastructure)},
		{"protected-areas", strconv.Itoa(c.ProtectedAreas)},
		{"recreational-points", strconv.Itoa(c.RecreationalPoints)},
		{"fires", strconv.Itoa(c.Fires)},
	}
}

func (v ValidationResult) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "datasets in %s are valid (snapshot %s)\n", v.Dir, v.SnapshotID)
	sb.WriteString(strings.TrimRight(FormatTable(v.TableHeaders(), v.TableRows()), "\n"))
	return sb.String()
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and validate every dataset in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()

			loader := datastore.NewLoader(cliCtx.Config.Data.Dir, cliCtx.Logger)
			snap, err := loader.Load(ctx)
			if err != nil {
				return err
			}
			return PrintResult(cmd, ValidationResult{
				Dir:        loader.Dir(),
				SnapshotID: snap.ID,
				Counts:     snap.Counts(),
			})
		},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// export
// ─────────────────────────────────────────────────────────────────────────────

type exportView struct {
	res *analysis.ExportResult
}

func (v exportView) JSONValue() interface{} { return v.res }

func (v exportView) String() string {
	return fmt.Sprintf("report for snapshot %s exported to %s/%s (%d bytes, %d regions, %d zones)",
		v.res.SnapshotID, v.res.Bucket, v.res.ObjectKey, v.res.Size, v.res.Regions, v.res.Zones)
}

func newExportCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the analysis and zone report",
		Long: "Without --file the report is uploaded to the configured object storage\n" +
			"and announced on the zones-ranked topic.  With --file it is written locally\n" +
			"(\"-\" for stdout) and no external service is contacted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				return withService(cmd, func(cliCtx *CLIContext, svc analysis.Service) error {
					return exportToFile(cmd, cliCtx, svc, file)
				})
			}

			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if !cliCtx.Config.Storage.Enabled {
				return errors.New(errors.ErrCodeFeatureDisabled, "report export is not configured").
					WithDetail("enable storage or pass --file")
			}
			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()

			c, err := cliCtx.Open(ctx, bootstrap.Options{External: true, RequireData: true})
			if err != nil {
				return err
			}
			defer c.Close()

			res, err := c.Service.Export(ctx)
			if err != nil {
				return err
			}
			return PrintResult(cmd, exportView{res: res})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "write the report to this file instead of object storage (\"-\" for stdout)")
	return cmd
}

func exportToFile(cmd *cobra.Command, cliCtx *CLIContext, svc analysis.Service, path string) error {
	report, err := analysis.BuildReport(cmd.Context(), svc)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode report")
	}
	data = append(data, '\n')

	if path == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to write report").WithDetail(path)
	}
	cliCtx.Logger.Info("report written",
		logging.String("file", path),
		logging.String("snapshot_id", report.SnapshotID),
		logging.Int("zones", len(report.Zones)))
	return PrintResult(cmd, exportView{res: &analysis.ExportResult{
		SnapshotID: report.SnapshotID,
		ObjectKey:  path,
		Bucket:     "file",
		Size:       int64(len(data)),
		Regions:    len(report.Results),
		Zones:      len(report.Zones),
		ExportedAt: time.Now().UTC(),
	}})
}

//Personal.AI order the ending
