package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/mark"
)

type fakeRepo struct {
	marksByRange func(start, end time.Time) ([]*mark.Mark, error)
	saved        []*mark.Mark
	deleted      []time.Time
	deleteErr    error
}

func (f *fakeRepo) SetMark(ctx context.Context, m *mark.Mark) error {
	f.saved = append(f.saved, m)
	return nil
}

func (f *fakeRepo) GetMark(ctx context.Context, date time.Time) (*mark.Mark, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) DeleteMark(ctx context.Context, date time.Time) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, date)
	return nil
}

func (f *fakeRepo) ListMarksByDateRange(ctx context.Context, start, end time.Time) ([]*mark.Mark, error) {
	if f.marksByRange == nil {
		return nil, errors.New("not implemented")
	}
	return f.marksByRange(start, end)
}

func (f *fakeRepo) Close() error {
	return nil
}

func TestLoadMarksReturnsMarksLoadedMsg(t *testing.T) {
	start := time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 6, 0, 0, 0, 0, time.UTC)

	repo := &fakeRepo{
		marksByRange: func(s, e time.Time) ([]*mark.Mark, error) {
			if !s.Equal(start) || !e.Equal(end) {
				t.Errorf("range = %v..%v, want %v..%v", s, e, start, end)
			}
			m, _ := mark.New("2024-03-15", "dentist")
			return []*mark.Mark{m}, nil
		},
	}

	msg := LoadMarks(repo, start, end)()
	loaded, ok := msg.(MarksLoadedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want MarksLoadedMsg", msg)
	}
	if len(loaded.Marks) != 1 || loaded.Marks[0].Note != "dentist" {
		t.Fatalf("marks = %v", loaded.Marks)
	}
}

func TestLoadMarksReturnsErrMsg(t *testing.T) {
	wantErr := errors.New("boom")
	repo := &fakeRepo{
		marksByRange: func(start, end time.Time) ([]*mark.Mark, error) {
			return nil, wantErr
		},
	}

	msg := LoadMarks(repo, time.Now(), time.Now())()
	errMsg, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("msg type = %T, want ErrMsg", msg)
	}
	if !errors.Is(errMsg.Err, wantErr) {
		t.Fatalf("err = %v, want %v", errMsg.Err, wantErr)
	}
}

func TestLoadMarksWithoutRepo(t *testing.T) {
	if cmd := LoadMarks(nil, time.Now(), time.Now()); cmd != nil {
		t.Fatal("expected nil command without a repository")
	}
}

func TestSaveMark(t *testing.T) {
	tests := []struct {
		name    string
		repo    *fakeRepo
		date    string
		note    string
		wantErr error
	}{
		{name: "saved", repo: &fakeRepo{}, date: "2024-03-15", note: "  dentist "},
		{name: "bad date", repo: &fakeRepo{}, date: "15/03/2024", wantErr: dateutil.ErrInvalidDateFormat},
		{name: "no storage", date: "2024-03-15", wantErr: ErrNoStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var repo mark.Repository
			if tt.repo != nil {
				repo = tt.repo
			}
			msg := SaveMark(repo, tt.date, tt.note)()

			if tt.wantErr != nil {
				errMsg, ok := msg.(ErrMsg)
				if !ok {
					t.Fatalf("msg type = %T, want ErrMsg", msg)
				}
				if !errors.Is(errMsg.Err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", errMsg.Err, tt.wantErr)
				}
				return
			}

			saved, ok := msg.(MarkSavedMsg)
			if !ok {
				t.Fatalf("msg type = %T, want MarkSavedMsg", msg)
			}
			if saved.Mark.Note != "dentist" {
				t.Errorf("note = %q, want %q", saved.Mark.Note, "dentist")
			}
			if len(tt.repo.saved) != 1 {
				t.Errorf("saved %d marks, want 1", len(tt.repo.saved))
			}
		})
	}
}

func TestDeleteMark(t *testing.T) {
	repo := &fakeRepo{}
	msg := DeleteMark(repo, "2024-03-15")()

	deleted, ok := msg.(MarkDeletedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want MarkDeletedMsg", msg)
	}
	if deleted.Date != "2024-03-15" {
		t.Errorf("date = %q, want %q", deleted.Date, "2024-03-15")
	}

	repo.deleteErr = mark.ErrMarkNotFound
	msg = DeleteMark(repo, "2024-03-16")()
	errMsg, ok := msg.(ErrMsg)
	if !ok || !errors.Is(errMsg.Err, mark.ErrMarkNotFound) {
		t.Fatalf("msg = %#v, want ErrMsg wrapping ErrMarkNotFound", msg)
	}
}

func TestWaitForChange(t *testing.T) {
	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	if _, ok := WaitForChange(ch)().(StateChangedMsg); !ok {
		t.Fatal("expected StateChangedMsg")
	}

	close(ch)
	if msg := WaitForChange(ch)(); msg != nil {
		t.Fatalf("msg = %#v, want nil after close", msg)
	}
}
