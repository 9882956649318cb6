package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestSaveAndTop(t *testing.T) {
	store := openTestStore(t)

	for _, e := range []struct {
		name  string
		score int
	}{
		{"ann", 100},
		{"bob", 50},
		{"cat", 200},
	} {
		if _, err := store.Save(e.name, e.score); err != nil {
			t.Fatalf("Save(%s) failed: %v", e.name, err)
		}
	}

	top, err := store.Top()
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(top))
	}
	expected := []string{"cat", "ann", "bob"}
	for i, e := range top {
		if e.Name != expected[i] || e.Rank != i+1 {
			t.Errorf("Top()[%d] = %s rank %d, expected %s rank %d", i, e.Name, e.Rank, expected[i], i+1)
		}
	}

	high, err := store.HighScore()
	if err != nil || high != 200 {
		t.Errorf("HighScore() = %d, %v, expected 200", high, err)
	}
}

func TestTableKeepsTopFive(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		rank, err := store.Save("p", i*10)
		if err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
		if rank != 1 {
			t.Errorf("ascending score %d ranked %d, expected 1", i*10, rank)
		}
	}

	// Table is full with 10..50; 10 is the lowest.
	if ok, _ := store.Qualifies(10); ok {
		t.Error("a tie with the lowest entry should not qualify")
	}
	if ok, _ := store.Qualifies(11); !ok {
		t.Error("beating the lowest entry should qualify")
	}

	rank, err := store.Save("low", 5)
	if err != nil || rank != 0 {
		t.Errorf("non-qualifying Save() = %d, %v, expected 0", rank, err)
	}

	rank, err = store.Save("mid", 30)
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if rank != 4 {
		t.Errorf("tie at 30 ranked %d, expected 4 (below the existing 30)", rank)
	}

	top, _ := store.Top()
	if len(top) != TableSize {
		t.Fatalf("table holds %d entries, expected %d", len(top), TableSize)
	}
	scores := []int{50, 40, 30, 30, 20}
	for i, e := range top {
		if e.Score != scores[i] {
			t.Errorf("Top()[%d].Score = %d, expected %d", i, e.Score, scores[i])
		}
	}
}

func TestQualifiesRejectsZero(t *testing.T) {
	store := openTestStore(t)
	if ok, _ := store.Qualifies(0); ok {
		t.Error("zero should never qualify")
	}
	if ok, _ := store.Qualifies(1); !ok {
		t.Error("any positive score qualifies for an empty table")
	}
}

func TestNames(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Save("abcdefghijk", 10); !errors.Is(err, ErrNameTooLong) {
		t.Errorf("11-character name error = %v, expected ErrNameTooLong", err)
	}
	if _, err := store.Save("abcdefghij", 10); err != nil {
		t.Errorf("10-character name failed: %v", err)
	}
	if _, err := store.Save("   ", 5); err != nil {
		t.Fatalf("blank name failed: %v", err)
	}

	top, _ := store.Top()
	if len(top) != 2 || top[1].Name != NoName {
		t.Errorf("blank name stored as %+v, expected %q", top, NoName)
	}
}

func TestReset(t *testing.T) {
	store := openTestStore(t)
	store.Save("ann", 100)
	if _, err := store.RecordGame(100, 2, 60); err != nil {
		t.Fatal(err)
	}

	if err := store.Reset(); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	top, _ := store.Top()
	if len(top) != 0 {
		t.Errorf("Reset() left %d entries", len(top))
	}
	high, _ := store.HighScore()
	if high != 0 {
		t.Errorf("HighScore() after reset = %d, expected 0", high)
	}
	games, _ := store.RecentGames(10)
	if len(games) != 1 {
		t.Error("Reset() should keep game history")
	}
}

func TestGameHistoryAndStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.RecordGame(30, 1, 40)
	store.RecordGame(90, 4, 120)
	store.RecordGame(60, 2, 80)

	games, err := store.RecentGames(2)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(games) != 2 || games[0].Score != 60 || games[1].Score != 90 {
		t.Errorf("RecentGames(2) = %+v", games)
	}

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 90 || stats.TotalScore != 180 || stats.BestLevel != 4 {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats.AvgScore != 60 {
		t.Errorf("AvgScore = %v, expected 60", stats.AvgScore)
	}
}

func TestConcurrentSavesKeepTableConsistent(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < TableSize; i++ {
		if _, err := store.Save("base", 10); err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
	}

	const players = 20
	ranks := make([]int, players)
	errs := make([]error, players)
	var wg sync.WaitGroup
	for i := 0; i < players; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ranks[i], errs[i] = store.Save("p", 11+i)
		}(i)
	}
	wg.Wait()

	for i := 0; i < players; i++ {
		if errs[i] != nil {
			t.Fatalf("Save(%d) failed: %v", 11+i, errs[i])
		}
		if ranks[i] < 0 || ranks[i] > TableSize {
			t.Errorf("Save(%d) ranked %d, outside the table", 11+i, ranks[i])
		}
	}
	// The best score is never trimmed, so it must have been ranked.
	if ranks[players-1] == 0 {
		t.Errorf("Save(%d) reported no rank", 10+players)
	}

	top, err := store.Top()
	if err != nil {
		t.Fatalf("Top() failed: %v", err)
	}
	if len(top) != TableSize {
		t.Fatalf("table holds %d entries, expected %d", len(top), TableSize)
	}
	for i, e := range top {
		if want := 10 + players - i; e.Score != want {
			t.Errorf("Top()[%d].Score = %d, expected %d", i, e.Score, want)
		}
	}
}
