package trainer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteRewardPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rewards.png")

	rewards := []float64{-12.5, 3.0, 8.5, 7.2, 15.0}
	if err := WriteRewardPlot(path, rewards); err != nil {
		t.Fatalf("WriteRewardPlot failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected plot file, got %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected a non-empty plot file")
	}
}

func TestWriteRewardPlotEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rewards.png")
	if err := WriteRewardPlot(path, nil); err == nil {
		t.Error("Expected an error without recorded episodes")
	}
}
