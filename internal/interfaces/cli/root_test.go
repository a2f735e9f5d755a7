package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/recreation-potential/internal/domain/dataset"
	"github.com/turtacn/recreation-potential/internal/testutil"
	"github.com/turtacn/recreation-potential/pkg/errors"
)

// run executes the root command with args against a fixture data directory.
func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--data-dir", dataDir, "--log-level", "error"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteDataDir(t, dir)
	return dir
}

func TestNewRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "recreation", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"score", "score-all", "zones", "ahp", "validate", "export", "serve"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}

	for _, flag := range []string{"config", "data-dir", "output", "log-level", "verbose", "timeout"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
	assert.Equal(t, "text", cmd.PersistentFlags().Lookup("output").DefValue)
}

func TestGetCLIContext_Missing(t *testing.T) {
	cmd := &cobra.Command{}
	_, err := GetCLIContext(cmd)
	assert.Error(t, err)

	cmd.SetContext(context.Background())
	_, err = GetCLIContext(cmd)
	assert.True(t, errors.IsCode(err, errors.CodeInternal))
}

func TestRoot_RejectsUnknownOutputFormat(t *testing.T) {
	_, err := run(t, fixtureDir(t), "-o", "yaml", "ahp")
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestRoot_MissingConfigFile(t *testing.T) {
	_, err := run(t, fixtureDir(t), "--config", filepath.Join(t.TempDir(), "absent.yaml"), "ahp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config initialization failed")
}

func TestScore_JSON(t *testing.T) {
	out, err := run(t, fixtureDir(t), "-o", "json", "score", testutil.HighPotentialRegion)
	require.NoError(t, err)

	var got struct {
		Region     string  `json:"region"`
		TotalScore float64 `json:"total_score"`
		Category   string  `json:"category"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, testutil.HighPotentialRegion, got.Region)
	assert.InDelta(t, testutil.HighPotentialScore, got.TotalScore, 0.11)
	assert.NotEmpty(t, got.Category)
}

func TestScore_TextAndTable(t *testing.T) {
	dir := fixtureDir(t)

	out, err := run(t, dir, "score", testutil.MediumPotentialRegion)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, testutil.MediumPotentialRegion+": 49."), out)
	assert.Contains(t, out, "Recommendation: ")

	out, err = run(t, dir, "-o", "table", "score", testutil.MediumPotentialRegion)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 10)
	assert.True(t, strings.HasPrefix(lines[0], "FACTOR"))
	assert.True(t, strings.HasPrefix(lines[9], "total"))
}

func TestScore_UnknownRegion(t *testing.T) {
	_, err := run(t, fixtureDir(t), "score", "Атлантида")
	assert.True(t, errors.IsCode(err, errors.ErrCodeRegionNotFound))
}

func TestScore_RequiresRegion(t *testing.T) {
	_, err := run(t, fixtureDir(t), "score")
	assert.Error(t, err)
}

func TestScore_NoData(t *testing.T) {
	_, err := run(t, t.TempDir(), "score", testutil.HighPotentialRegion)
	assert.Error(t, err)
}

func TestScoreAll_RanksRegions(t *testing.T) {
	out, err := run(t, fixtureDir(t), "-o", "json", "score-all")
	require.NoError(t, err)

	var got struct {
		Results []struct {
			Region     string  `json:"region"`
			TotalScore float64 `json:"total_score"`
		} `json:"results"`
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got.Results)
	assert.Equal(t, len(got.Results), got.Count)
	assert.Equal(t, testutil.HighPotentialRegion, got.Results[0].Region)
	assert.Equal(t, testutil.MediumPotentialRegion, got.Results[1].Region)
	for i := 1; i < len(got.Results); i++ {
		assert.GreaterOrEqual(t, got.Results[i-1].TotalScore, got.Results[i].TotalScore)
	}
}

func TestScoreAll_Text(t *testing.T) {
	out, err := run(t, fixtureDir(t), "score-all")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 3)
	assert.True(t, strings.HasPrefix(lines[0], "#"))
	assert.Contains(t, lines[2], testutil.HighPotentialRegion)
}

func TestZones(t *testing.T) {
	dir := fixtureDir(t)

	out, err := run(t, dir, "-o", "json", "zones", "--type", "fire_prevention", "--limit", "1")
	require.NoError(t, err)
	var got struct {
		Zones []struct {
			Type   string `json:"type"`
			Region string `json:"region"`
		} `json:"zones"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Zones, 1)
	assert.Equal(t, "fire_prevention", got.Zones[0].Type)
	assert.Equal(t, testutil.HighPotentialRegion, got.Zones[0].Region)
	assert.GreaterOrEqual(t, got.Total, 1)

	out, err = run(t, dir, "zones")
	require.NoError(t, err)
	assert.Contains(t, out, "zone(s) recommended")
	assert.Contains(t, out, "PRIORITY")

	_, err = run(t, dir, "zones", "--type", "beach")
	assert.True(t, errors.IsCode(err, errors.ErrCodeZoneTypeInvalid))
}

func TestAHP(t *testing.T) {
	// the weights do not depend on datasets
	dir := t.TempDir()

	out, err := run(t, dir, "-o", "json", "ahp")
	require.NoError(t, err)
	var got struct {
		Weights []struct {
			Criterion string  `json:"criterion"`
			Weight    float64 `json:"weight"`
		} `json:"weights"`
		Consistency struct {
			IsConsistent bool `json:"is_consistent"`
		} `json:"consistency"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Weights, 7)
	sum := 0.0
	for _, w := range got.Weights {
		sum += w.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.True(t, got.Consistency.IsConsistent)

	out, err = run(t, dir, "ahp")
	require.NoError(t, err)
	assert.Contains(t, out, "CR = ")

	out, err = run(t, dir, "ahp", "--report")
	require.NoError(t, err)
	assert.Contains(t, out, "AHP")
	assert.Contains(t, out, "Consistency Ratio (CR)")
}

func TestValidate(t *testing.T) {
	out, err := run(t, fixtureDir(t), "-o", "json", "validate")
	require.NoError(t, err)

	var got ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got.SnapshotID)
	assert.Equal(t, 7, got.Counts.Fires)
	assert.Positive(t, got.Counts.Regions)

	out, err = run(t, fixtureDir(t), "-o", "table", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "recreational-points")
}

func TestValidate_InvalidDataset(t *testing.T) {
	dir := fixtureDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, dataset.KindPopulation.FileName()), []byte("{not json"), 0o644))

	_, err := run(t, dir, "validate")
	assert.Error(t, err)
}

func TestExport_ToFile(t *testing.T) {
	dir := fixtureDir(t)
	target := filepath.Join(t.TempDir(), "report.json")

	out, err := run(t, dir, "export", "--file", target)
	require.NoError(t, err)
	assert.Contains(t, out, "exported to file/"+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var report struct {
		SnapshotID string            `json:"snapshot_id"`
		Results    []json.RawMessage `json:"results"`
		Zones      []json.RawMessage `json:"zones"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	assert.NotEmpty(t, report.SnapshotID)
	assert.NotEmpty(t, report.Results)
	assert.NotEmpty(t, report.Zones)
}

func TestExport_Stdout(t *testing.T) {
	out, err := run(t, fixtureDir(t), "export", "-f", "-")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
}

func TestExport_StorageDisabled(t *testing.T) {
	_, err := run(t, fixtureDir(t), "export")
	assert.True(t, errors.IsCode(err, errors.ErrCodeFeatureDisabled))
}

func TestFormatTable(t *testing.T) {
	got := FormatTable([]string{"REGION", "SCORE"}, [][]string{
		{"Львівська область", "77.6"},
		{"Київ", "49.9"},
	})
	want := "REGION             SCORE\n" +
		"-----------------  -----\n" +
		"Львівська область  77.6\n" +
		"Київ               49.9\n"
	assert.Equal(t, want, got)
	assert.Empty(t, FormatTable(nil, nil))
}

//Personal.AI order the ending
