package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/recreation-potential/internal/application/analysis"
	"github.com/turtacn/recreation-potential/internal/bootstrap"
	"github.com/turtacn/recreation-potential/internal/domain/ahp"
	"github.com/turtacn/recreation-potential/internal/domain/scoring"
)

// offline is the bootstrap mode of read-only commands: no external clients,
// datasets must load.
var offline = bootstrap.Options{RequireData: true}

// withService opens the components for the duration of fn.
func withService(cmd *cobra.Command, fn func(cliCtx *CLIContext, svc analysis.Service) error) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd, cliCtx)
	defer cancel()
	cmd.SetContext(ctx)

	c, err := cliCtx.Open(ctx, offline)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(cliCtx, c.Service)
}

// ─────────────────────────────────────────────────────────────────────────────
// score
// ─────────────────────────────────────────────────────────────────────────────

// analysisView prints one region analysis.
type analysisView struct {
	a *scoring.RegionAnalysis
}

func (v analysisView) JSONValue() interface{} { return v.a }

func (v analysisView) TableHeaders() []string { return []string{"FACTOR", "SCORE"} }

func (v analysisView) TableRows() [][]string {
	a := v.a
	return [][]string{
		{"demand", formatScore(a.DemandScore)},
		{"pfz", formatScore(a.PFZScore)},
		{"nature", formatScore(a.NatureScore)},
		{"accessibility", formatScore(a.AccessibilityScore)},
		{"infrastructure", formatScore(a.InfrastructureScore)},
		{"fire", formatScore(a.FireScore)},
		{"saturation", formatScore(a.SaturationPenalty)},
		{"total", formatScore(a.TotalScore)},
	}
}

func (v analysisView) String() string {
	a := v.a
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s/100 (%s)\n", a.Region, formatScore(a.TotalScore), a.Category)
	sb.WriteString(FormatTable(v.TableHeaders(), v.TableRows()))
	fmt.Fprintf(&sb, "Recommendation: %s", a.Recommendation)
	return sb.String()
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <region>",
		Short: "Score one region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(_ *CLIContext, svc analysis.Service) error {
				a, err := svc.Analyze(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return PrintResult(cmd, analysisView{a: a.Rounded()})
			})
		},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// score-all
// ─────────────────────────────────────────────────────────────────────────────

type rankingView struct {
	results []*scoring.RegionAnalysis
}

func (v rankingView) JSONValue() interface{} {
	return map[string]interface{}{"results": v.results, "count": len(v.results)}
}

func (v rankingView) TableHeaders() []string {
	return []string{"#", "REGION", "TOTAL", "CATEGORY"}
}

func (v rankingView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.results))
	for i, a := range v.results {
		rows = append(rows, []string{strconv.Itoa(i + 1), a.Region, formatScore(a.TotalScore), a.Category})
	}
	return rows
}

func (v rankingView) String() string {
	return strings.TrimRight(FormatTable(v.TableHeaders(), v.TableRows()), "\n")
}

func newScoreAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score-all",
		Short: "Score and rank every region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(_ *CLIContext, svc analysis.Service) error {
				results, err := svc.AnalyzeAll(cmd.Context())
				if err != nil {
					return err
				}
				rounded := make([]*scoring.RegionAnalysis, len(results))
				for i, a := range results {
					rounded[i] = a.Rounded()
				}
				return PrintResult(cmd, rankingView{results: rounded})
			})
		},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// zones
// ─────────────────────────────────────────────────────────────────────────────

type zonesView struct {
	rec *analysis.ZoneRecommendations
}

func (v zonesView) JSONValue() interface{} { return v.rec }

func (v zonesView) TableHeaders() []string {
	return []string{"PRIORITY", "TYPE", "REGION", "LAT", "LNG", "NAME"}
}

func (v zonesView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.rec.Zones))
	for _, z := range v.rec.Zones {
		rows = append(rows, []string{
			strconv.Itoa(z.Priority),
			z.Type.String(),
			z.Region,
			strconv.FormatFloat(z.Coordinates[0], 'f', 4, 64),
			strconv.FormatFloat(z.Coordinates[1], 'f', 4, 64),
			z.Name,
		})
	}
	return rows
}

func (v zonesView) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d zone(s) recommended, showing %d\n", v.rec.Total, len(v.rec.Zones))
	sb.WriteString(strings.TrimRight(FormatTable(v.TableHeaders(), v.TableRows()), "\n"))
	return sb.String()
}

func newZonesCmd() *cobra.Command {
	var (
		zoneType string
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "zones",
		Short: "Rank recommended zones for new facilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(_ *CLIContext, svc analysis.Service) error {
				rec, err := svc.RecommendedZones(cmd.Context(), analysis.ZoneQuery{Type: zoneType, Limit: limit})
				if err != nil {
					return err
				}
				return PrintResult(cmd, zonesView{rec: rec})
			})
		},
	}
	cmd.Flags().StringVar(&zoneType, "type", "", "zone type: near_pfz|roadside|fire_prevention")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of zones (0 = all)")
	return cmd
}

// ─────────────────────────────────────────────────────────────────────────────
// ahp
// ─────────────────────────────────────────────────────────────────────────────

type ahpView struct {
	report ahp.Report
	full   bool
}

func (v ahpView) JSONValue() interface{} { return v.report }

func (v ahpView) TableHeaders() []string { return []string{"CRITERION", "WEIGHT", "POINTS"} }

func (v ahpView) TableRows() [][]string {
	rows := make([][]string, 0, len(v.report.Weights))
	for i, w := range v.report.Weights {
		points := ""
		if i < len(v.report.Maxima) {
			points = strconv.Itoa(v.report.Maxima[i].Points)
		}
		rows = append(rows, []string{w.Criterion, strconv.FormatFloat(w.Value, 'f', 4, 64), points})
	}
	return rows
}

func (v ahpView) String() string {
	if v.full {
		return strings.TrimRight(v.report.Render(), "\n")
	}
	c := v.report.Consistency
	var sb strings.Builder
	sb.WriteString(FormatTable(v.TableHeaders(), v.TableRows()))
	fmt.Fprintf(&sb, "CR = %.4f (consistent: %t)", c.CR, c.IsConsistent)
	return sb.String()
}

func newAHPCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "ahp",
		Short: "Show the AHP criterion weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := GetCLIContext(cmd); err != nil {
				return err
			}
			// weights come from the fixed comparison matrix; no datasets needed
			report := ahp.NewDefaultCalculator().Report(ahp.DefaultJustifications)
			return PrintResult(cmd, ahpView{report: report, full: full})
		},
	}
	cmd.Flags().BoolVar(&full, "report", false, "print the full methodology report")
	return cmd
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

//Personal.AI order the ending
