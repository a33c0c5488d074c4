package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/storage"
)

type fakeHistory struct {
	recent []storage.SessionRecord
	top    []storage.SessionRecord
	stats  *storage.SessionStats
	err    error
}

func (h fakeHistory) RecentSessions(int) ([]storage.SessionRecord, error) { return h.recent, h.err }
func (h fakeHistory) TopSessions(int) ([]storage.SessionRecord, error)    { return h.top, h.err }
func (h fakeHistory) Stats() (*storage.SessionStats, error)               { return h.stats, nil }

func sampleHistory() fakeHistory {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	lost := storage.SessionRecord{Outcome: "lost", Score: 30, BlocksDestroyed: 3, BlocksTotal: 8, Duration: 12 * time.Second, CreatedAt: now}
	won := storage.SessionRecord{Outcome: "won", Score: 80, BlocksDestroyed: 8, BlocksTotal: 8, Duration: 41 * time.Second, CreatedAt: now.Add(-time.Hour)}
	return fakeHistory{
		recent: []storage.SessionRecord{lost, won},
		top:    []storage.SessionRecord{won, lost},
		stats:  &storage.SessionStats{Played: 2, Won: 1, Lost: 1, BestScore: 80, FastestWin: 41 * time.Second},
	}
}

func sendScoreboard(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestScoreboardSwitchesViews(t *testing.T) {
	m := NewScoreboardModel(sampleHistory(), 100, 30)

	if m.CurrentView() != ViewRecent || m.Sessions()[0].Outcome != "lost" {
		t.Fatalf("expected recent view first, got %s with %+v", m.CurrentView(), m.Sessions())
	}

	m = sendScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.CurrentView() != ViewBest || m.Sessions()[0].Score != 80 {
		t.Errorf("expected best view, got %s with %+v", m.CurrentView(), m.Sessions())
	}

	m = sendScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.CurrentView() != ViewRecent {
		t.Errorf("tab should cycle back to recent, got %s", m.CurrentView())
	}
}

func TestScoreboardView(t *testing.T) {
	m := NewScoreboardModel(sampleHistory(), 100, 30)
	out := m.View()

	for _, want := range []string{"BREAKOUT HISTORY", "played 2", "win rate 50%", "fastest win 41.0s", "3/8"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestScoreboardEmptyAndError(t *testing.T) {
	tests := []struct {
		name   string
		source HistorySource
		want   string
	}{
		{"nil source", nil, "No sessions recorded yet"},
		{"empty", fakeHistory{}, "No sessions recorded yet"},
		{"error", fakeHistory{err: errors.New("locked")}, "locked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewScoreboardModel(tt.source, 80, 24).View()
			if !strings.Contains(out, tt.want) {
				t.Errorf("view missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestScoreboardQuit(t *testing.T) {
	m := NewScoreboardModel(sampleHistory(), 80, 24)
	m = sendScoreboard(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if !m.IsQuitting() {
		t.Error("esc should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}
