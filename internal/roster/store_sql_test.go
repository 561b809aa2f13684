package roster

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ikhtibar-app/ikhtibar/internal/db"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	if err := db.EnsureSchema(context.Background(), sqlDB, db.DriverSQLite); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return NewSQLStore(sqlDB)
}

func TestStudentCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "Amira Hassan", "1001")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt == 0 {
		t.Fatalf("created = %+v", created)
	}

	if _, err := s.Create(ctx, "Someone Else", "1001"); !errors.Is(err, ErrDuplicateNationalID) {
		t.Fatalf("duplicate national id: err = %v", err)
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FullName != "Amira Hassan" || got.NationalID != "1001" {
		t.Fatalf("got = %+v", got)
	}
	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing: err = %v", err)
	}

	got.FullName = "Amira H. Saleh"
	updated, err := s.Update(ctx, got)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FullName != "Amira H. Saleh" {
		t.Fatalf("updated = %+v", updated)
	}

	if _, err := s.Update(ctx, Student{ID: "missing", FullName: "x", NationalID: "9999"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing: err = %v", err)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: err = %v", err)
	}
}

func TestUpdateRejectsTakenNationalID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a, _ := s.Create(ctx, "A", "1001")
	b, _ := s.Create(ctx, "B", "1002")

	b.NationalID = "1001"
	if _, err := s.Update(ctx, b); !errors.Is(err, ErrDuplicateNationalID) {
		t.Fatalf("steal national id: err = %v", err)
	}

	// keeping your own national id is not a collision
	a.FullName = "A Renamed"
	if _, err := s.Update(ctx, a); err != nil {
		t.Fatalf("self update: %v", err)
	}
}

func TestListOrdersByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	s.Create(ctx, "Zainab", "3")
	s.Create(ctx, "Ali", "1")
	s.Create(ctx, "Mona", "2")

	students, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Ali", "Mona", "Zainab"}
	if len(students) != len(want) {
		t.Fatalf("listed %d students", len(students))
	}
	for i, name := range want {
		if students[i].FullName != name {
			t.Fatalf("row %d = %q, want %q", i, students[i].FullName, name)
		}
	}
}

func TestDeleteRefusedWithSubmissions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	st, _ := s.Create(ctx, "Amira Hassan", "1001")

	quizID := uuid.NewString()
	now := time.Now().Unix()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id,title,created_at) VALUES ($1,$2,$3)`, quizID, "Q", now); err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_submissions (id,quiz_id,student_id,total_points,submission_time,has_submitted)
		 VALUES ($1,$2,$3,$4,$5,$6)`, uuid.NewString(), quizID, st.ID, 5, now, true); err != nil {
		t.Fatalf("seed submission: %v", err)
	}

	if err := s.Delete(ctx, st.ID); !errors.Is(err, ErrHasSubmissions) {
		t.Fatalf("delete with submissions: err = %v", err)
	}
	if _, err := s.Get(ctx, st.ID); err != nil {
		t.Fatalf("student should survive: %v", err)
	}
}

func TestLookupOrCreate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.LookupOrCreate(ctx, "Amira Hassan", "1001")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}

	// second login with a different display name returns the same row
	second, err := s.LookupOrCreate(ctx, "Totally Different", "1001")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("ids differ: %s vs %s", first.ID, second.ID)
	}
	if second.FullName != "Amira Hassan" {
		t.Fatalf("login must not rename: %q", second.FullName)
	}

	students, _ := s.List(ctx)
	if len(students) != 1 {
		t.Fatalf("students = %d, want 1", len(students))
	}
}

func TestBulkUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	s.Create(ctx, "Old Name", "1001")

	inserted, updated, err := s.BulkUpsert(ctx, []Student{
		{FullName: "New Name", NationalID: "1001"},
		{FullName: "Fresh Student", NationalID: "1002"},
		{FullName: "Another One", NationalID: "1003"},
	})
	if err != nil {
		t.Fatalf("bulk upsert: %v", err)
	}
	if inserted != 2 || updated != 1 {
		t.Fatalf("inserted/updated = %d/%d, want 2/1", inserted, updated)
	}

	existing, err := s.LookupOrCreate(ctx, "", "1001")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if existing.FullName != "New Name" {
		t.Fatalf("import did not refresh name: %q", existing.FullName)
	}
}

func TestBulkUpsertRejectsBlankFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, _, err := s.BulkUpsert(ctx, []Student{
		{FullName: "Good Row", NationalID: "1001"},
		{FullName: "", NationalID: "1002"},
	})
	if err == nil {
		t.Fatal("blank full_name accepted")
	}
	// the transaction rolls back entirely
	students, _ := s.List(ctx)
	if len(students) != 0 {
		t.Fatalf("partial import survived: %d rows", len(students))
	}
}
