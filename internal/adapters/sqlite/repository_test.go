package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"boshenLines/internal/domain"
	"boshenLines/internal/prediction"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// setupTestDB creates a temporary database for testing
func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "prediction-levels-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	repo, err := NewRepository(Config{
		DBPath: dbPath,
		Logger: &mockLogger{},
	})
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		os.RemoveAll(tmpDir)
	}
	return repo, cleanup
}

func computeLines(t *testing.T, low, high float64) []domain.PredictionLine {
	t.Helper()
	lines, err := prediction.NewBoshen().Calculate(low, high)
	require.NoError(t, err)
	return lines
}

func TestRepository_SaveAndGetLevels(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	iv := domain.Interval{Low: 98.02, High: 98.75}
	lines := computeLines(t, iv.Low, iv.High)

	setID, err := repo.SaveLevels(ctx, "ETHUSDT", iv, lines)
	require.NoError(t, err)
	assert.Greater(t, setID, int64(0))

	sets, err := repo.GetRecentLevels(ctx, "ETHUSDT", 10)
	require.NoError(t, err)
	require.Len(t, sets, 1)

	got := sets[0]
	assert.Equal(t, setID, got.ID)
	assert.Equal(t, "ETHUSDT", got.Symbol)
	assert.InDelta(t, iv.Low, got.Interval.Low, 1e-9)
	assert.InDelta(t, iv.High, got.Interval.High, 1e-9)
	require.Len(t, got.Lines, len(lines))
	for i, line := range got.Lines {
		assert.Equal(t, lines[i].Index, line.Index)
		assert.Equal(t, lines[i].Name, line.Name)
		assert.InDelta(t, lines[i].Ratio, line.Ratio, 1e-9)
		assert.InDelta(t, lines[i].Price, line.Price, 1e-9)
		assert.Equal(t, lines[i].IsKeyLine, line.IsKeyLine)
	}
}

func TestRepository_GetRecentLevels_OrderAndLimit(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	intervals := []domain.Interval{
		{Low: 100.0, High: 101.0},
		{Low: 200.0, High: 202.0},
		{Low: 300.0, High: 303.0},
	}
	for _, iv := range intervals {
		_, err := repo.SaveLevels(ctx, "BTCUSDT", iv, computeLines(t, iv.Low, iv.High))
		require.NoError(t, err)
	}

	sets, err := repo.GetRecentLevels(ctx, "BTCUSDT", 2)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	// Newest first
	assert.InDelta(t, 300.0, sets[0].Interval.Low, 1e-9)
	assert.InDelta(t, 200.0, sets[1].Interval.Low, 1e-9)
}

func TestRepository_GetRecentLevels_SymbolIsolation(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	iv := domain.Interval{Low: 96.25, High: 97.06}
	_, err := repo.SaveLevels(ctx, "ETHUSDT", iv, computeLines(t, iv.Low, iv.High))
	require.NoError(t, err)

	sets, err := repo.GetRecentLevels(ctx, "BTCUSDT", 10)
	require.NoError(t, err)
	assert.Empty(t, sets)
}

func TestNewRepository_RequiresLogger(t *testing.T) {
	_, err := NewRepository(Config{DBPath: "unused.db"})
	assert.Error(t, err)
}
