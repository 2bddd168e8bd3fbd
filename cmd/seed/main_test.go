package main

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/student-survey/api/internal/infrastructure/memory"
	"github.com/sngm3741/student-survey/api/internal/survey/application"
)

func TestGeneratedSurveysPassValidation(t *testing.T) {
	ctx := context.Background()
	svc := application.NewSurveyService(memory.NewSurveyRepository())

	cmds := generateSurveys(rand.New(rand.NewSource(7)), 200, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, cmds, 200)
	for _, cmd := range cmds {
		_, err := svc.Create(ctx, cmd)
		require.NoError(t, err, "%+v", cmd)
	}

	removed, err := dropSurveys(ctx, svc)
	require.NoError(t, err)
	assert.Equal(t, 200, removed)

	left, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	a := generateSurveys(rand.New(rand.NewSource(42)), 10, now)
	b := generateSurveys(rand.New(rand.NewSource(42)), 10, now)
	assert.Equal(t, a, b)
}

func TestLoadEnvFileKeepsExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.env")
	content := "# comment\nexport SEED_TEST_A=\"from-file\"\nSEED_TEST_B=file-b\nnot a pair\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("SEED_TEST_B", "from-env")
	t.Setenv("SEED_TEST_A", "")
	require.NoError(t, os.Unsetenv("SEED_TEST_A"))

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("SEED_TEST_A"))
	assert.Equal(t, "from-env", os.Getenv("SEED_TEST_B"))
}
