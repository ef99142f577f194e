package showhistory

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gocalc/internal/storage"
	"gocalc/internal/storage/csvstore"
)

func TestShowHistoryEmpty(t *testing.T) {
	var out bytes.Buffer
	store := csvstore.New(filepath.Join(t.TempDir(), "history.csv"))
	require.NoError(t, New(store, &out, 5, nil).Execute(context.Background()))
	require.Contains(t, out.String(), "No history yet.")
}

func TestShowHistoryLastFive(t *testing.T) {
	ctx := context.Background()
	store := csvstore.New(filepath.Join(t.TempDir(), "history.csv"))
	for i := 1; i <= 6; i++ {
		rec := storage.HistoryRecord{Operation: fmt.Sprintf("op%d", i), Operand1: float64(i), Operand2: float64(i + 1), Result: float64(2*i + 1)}
		require.NoError(t, store.Append(ctx, rec))
	}

	var out bytes.Buffer
	require.NoError(t, New(store, &out, 5, nil).Execute(ctx))
	require.Contains(t, out.String(), "Last 5 Calculations:")
	require.NotContains(t, out.String(), "op1")
	for i := 2; i <= 6; i++ {
		require.Contains(t, out.String(), fmt.Sprintf("op%d", i))
	}
	require.Contains(t, out.String(), "13.0")
}

func TestRenderColumns(t *testing.T) {
	var out bytes.Buffer
	Render(&out, []storage.HistoryRecord{{Operation: "division", Operand1: 1, Operand2: 4, Result: 0.25}})
	for _, want := range []string{"OPERATION", "OPERAND1", "OPERAND2", "RESULT", "division", "0.25"} {
		require.Contains(t, out.String(), want)
	}
}
