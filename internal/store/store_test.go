package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sub", "artifacts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestArtifactHash_Unknown(t *testing.T) {
	s := openTemp(t)

	hash, err := s.ArtifactHash("/nowhere.html")
	require.NoError(t, err)
	assert.Empty(t, hash)
}

func TestRecordArtifact_LatestWins(t *testing.T) {
	s := openTemp(t)

	first := NewRun("SB60", "/out")
	require.NoError(t, s.SaveRun(first))
	require.NoError(t, s.RecordArtifact(Artifact{
		Path: "/out/a.html", SHA256: "aaa", SizeBytes: 3, RunID: first.ID, WrittenAt: time.Now(),
	}))

	second := NewRun("SB60", "/out")
	second.StartedAt = first.StartedAt.Add(time.Second)
	require.NoError(t, s.SaveRun(second))
	require.NoError(t, s.RecordArtifact(Artifact{
		Path: "/out/a.html", SHA256: "bbb", SizeBytes: 3, RunID: second.ID, WrittenAt: time.Now(),
	}))

	hash, err := s.ArtifactHash("/out/a.html")
	require.NoError(t, err)
	assert.Equal(t, "bbb", hash)

	got, err := s.ArtifactsForRun(second.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "/out/a.html", got[0].Path)

	got, err = s.ArtifactsForRun(first.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListRuns_NewestFirst(t *testing.T) {
	s := openTemp(t)

	base := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		r := NewRun("SB60", "/out")
		r.StartedAt = base.Add(time.Duration(i) * time.Minute)
		r.Written = i
		require.NoError(t, s.SaveRun(r))
	}

	runs, err := s.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 2, runs[0].Written)
	assert.Equal(t, 1, runs[1].Written)
	assert.True(t, runs[0].StartedAt.Equal(base.Add(2*time.Minute)))
}

func TestCorruptTimestampsAreErrors(t *testing.T) {
	s := openTemp(t)

	r := NewRun("SB60", "/out")
	require.NoError(t, s.SaveRun(r))
	_, err := s.db.Exec(`INSERT INTO artifacts (path, sha256, size_bytes, run_id, written_at)
		VALUES (?, ?, ?, ?, ?)`, "/out/a.html", "aaa", 3, r.ID, "yesterday")
	require.NoError(t, err)

	_, err = s.ArtifactsForRun(r.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/out/a.html written_at")

	_, err = s.db.Exec("UPDATE runs SET started_at = ? WHERE run_id = ?", "not a time", r.ID)
	require.NoError(t, err)

	_, err = s.ListRuns(10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "started_at")
}
