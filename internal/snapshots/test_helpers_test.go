package snapshots

import (
	"os"
	"testing"

	"github.com/preston-bernstein/mlb-gameday-service/internal/domain"
)

func writeScheduleSnapshot(t *testing.T, w *Writer, date string, snap domain.ScheduleResponse) {
	t.Helper()
	if err := w.WriteScheduleSnapshot(date, snap); err != nil {
		t.Fatalf("failed to write snapshot for %s: %v", date, err)
	}
}

func writeSimpleSnapshot(t *testing.T, w *Writer, date string) {
	t.Helper()
	writeScheduleSnapshot(t, w, date, domain.NewScheduleResponse(date, []domain.Game{{ID: date + "-1"}}))
}

func requireSnapshotExists(t *testing.T, w *Writer, date string) {
	t.Helper()
	if _, err := os.Stat(ScheduleSnapshotPath(w.BasePath(), date)); err != nil {
		t.Fatalf("expected snapshot for %s to exist: %v", date, err)
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected dates %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected dates %v, got %v", want, got)
		}
	}
}
