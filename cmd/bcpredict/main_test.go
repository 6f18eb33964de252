package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, dir, header string, rows int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString(header + "\n")
	for i := range rows {
		label, base := "B", 10.0
		if i%2 == 1 {
			label, base = "M", 20.0
		}
		fmt.Fprintf(&b, "%s,%.2f,%.2f\n", label, base+float64(i%5)*0.1, base*2+float64(i%3)*0.1)
	}
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func TestTrainCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("BCPREDICT_MODEL_N_ESTIMATORS", "10")
	path := writeDataset(t, dir, "diagnosis,mean_radius,area_mean", 60)

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"train", "--data", path, "--log-level", "error"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	report := out.String()
	assert.Contains(t, report, "Train size: 48, Test size: 12")
	assert.Contains(t, report, "Accuracy:")
	assert.Contains(t, report, "Average Cell Size (mean_radius)")
	assert.Contains(t, report, "area_mean")
}

func TestTrainCommandHalts(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeDataset(t, dir, "target,mean_radius,area_mean", 10)

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"train", "--data", path, "--log-level", "error"})
	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not find target column")
}

func TestTrainCommandBadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("BCPREDICT_MODEL_TEST_RATIO", "1.5")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"train"})
	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model.test_ratio")
}
