package publish

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeResult struct {
	rowsAffected int64
	err          error
}

func (r *fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r *fakeResult) RowsAffected() (int64, error) { return r.rowsAffected, r.err }

type mockExecutor struct {
	mu     sync.Mutex
	calls  int
	query  string
	result sql.Result
	err    error
}

func (m *mockExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.query = query
	return m.result, m.err
}

func (m *mockExecutor) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type countingRecorder struct {
	mu        sync.Mutex
	published []int
}

func (r *countingRecorder) RecordNewsPublished(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, count)
}

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func TestJob_Run_PublishesDuePosts(t *testing.T) {
	var buf bytes.Buffer
	db := &mockExecutor{result: &fakeResult{rowsAffected: 3}}
	rec := &countingRecorder{}
	job := NewJob(db, newTestLogger(&buf), rec)

	n, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if n != 3 {
		t.Errorf("published = %d, want 3", n)
	}

	if !strings.Contains(db.query, "UPDATE news") {
		t.Errorf("query should update news, got %q", db.query)
	}
	if !strings.Contains(db.query, "status = 'SCHEDULED'") || !strings.Contains(db.query, "publish_at <= now()") {
		t.Errorf("query should only touch due scheduled posts, got %q", db.query)
	}
	if len(rec.published) != 1 || rec.published[0] != 3 {
		t.Errorf("recorded = %v, want [3]", rec.published)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}
	if entry["published_count"] != float64(3) {
		t.Errorf("published_count = %v, want 3", entry["published_count"])
	}
}

func TestJob_Run_NothingDue(t *testing.T) {
	var buf bytes.Buffer
	job := NewJob(&mockExecutor{result: &fakeResult{}}, newTestLogger(&buf), &countingRecorder{})

	n, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if n != 0 {
		t.Errorf("published = %d, want 0", n)
	}
}

func TestJob_Run_ExecError(t *testing.T) {
	var buf bytes.Buffer
	execErr := errors.New("connection refused")
	rec := &countingRecorder{}
	job := NewJob(&mockExecutor{err: execErr}, newTestLogger(&buf), rec)

	_, err := job.Run(context.Background())
	if !errors.Is(err, execErr) {
		t.Fatalf("expected wrapped exec error, got %v", err)
	}
	if len(rec.published) != 0 {
		t.Error("nothing should be recorded on failure")
	}
	if !strings.Contains(buf.String(), `"level":"ERROR"`) {
		t.Errorf("expected an ERROR log, got %s", buf.String())
	}
}

func TestJob_Run_RowsAffectedError(t *testing.T) {
	var buf bytes.Buffer
	rowsErr := errors.New("driver does not support RowsAffected")
	job := NewJob(&mockExecutor{result: &fakeResult{err: rowsErr}}, newTestLogger(&buf), &countingRecorder{})

	if _, err := job.Run(context.Background()); !errors.Is(err, rowsErr) {
		t.Fatalf("expected wrapped RowsAffected error, got %v", err)
	}
}

func TestJob_Start_RunsImmediatelyAndStopsOnCancel(t *testing.T) {
	var buf bytes.Buffer
	db := &mockExecutor{result: &fakeResult{}}
	job := NewJob(db, newTestLogger(&buf), &countingRecorder{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx, time.Hour)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for db.callCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
	if db.callCount() != 1 {
		t.Errorf("calls = %d, want 1", db.callCount())
	}
}
