package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/data"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/dataprep"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/logger"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/pipeline"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "breast_cancer_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const small = `id,diagnosis,mean_radius,mean_texture,note,empty
1,M,20.1,25.0,a,
2,B,11.2,14.0,b,
3,M,19.5,22.1,c,
4,B,12.0,15.2,d,
5,M,21.3,,e,
6,B,10.9,13.3,f,
7,M,18.8,24.4,g,
8,B,12.5,16.1,h,
9,M,22.0,26.7,i,
10,B,11.7,14.9,j,
`

func testConfig() pipeline.TrainConfig {
	cfg := pipeline.DefaultTrainConfig()
	cfg.NEstimators = 10
	return cfg
}

func TestBootstrap(t *testing.T) {
	lggr, logs := logger.TestObserved(t, zapcore.DebugLevel)
	st, err := Bootstrap(data.NewCache(), writeCSV(t, small), testConfig(), lggr)
	require.NoError(t, err)

	require.False(t, st.Halted())
	require.NotNil(t, st.Trained)
	require.NotNil(t, st.Predictor)
	assert.Equal(t, []string{"mean_radius", "mean_texture"}, st.Dataset.Features)
	assert.Equal(t, 2, st.Trained.TestSize)

	assert.Equal(t, 2, logs.FilterMessage("Dropped column").Len())
	assert.Equal(t, 1, logs.FilterMessage("Model trained").Len())
}

func TestBootstrapHaltsWithoutLabel(t *testing.T) {
	lggr, logs := logger.TestObserved(t, zapcore.InfoLevel)
	st, err := Bootstrap(data.NewCache(), writeCSV(t, "id,target,a\n1,1,2\n2,0,3\n"), testConfig(), lggr)
	require.NoError(t, err)

	require.True(t, st.Halted())
	assert.ErrorIs(t, st.Halt, dataprep.ErrLabelColumnNotFound)
	assert.Nil(t, st.Trained)
	assert.Nil(t, st.Predictor)
	assert.Zero(t, logs.FilterMessage("Model trained").Len())
}

func TestBootstrapHaltsOnUnmappedLabel(t *testing.T) {
	st, err := Bootstrap(data.NewCache(), writeCSV(t, "diagnosis,a\nM,1\nQ,2\n"), testConfig(), logger.Test(t))
	require.NoError(t, err)
	require.True(t, st.Halted())
}

func TestBootstrapMissingFileIsFatal(t *testing.T) {
	_, err := Bootstrap(data.NewCache(), filepath.Join(t.TempDir(), "nope.csv"), testConfig(), logger.Nop())
	require.Error(t, err)
}
