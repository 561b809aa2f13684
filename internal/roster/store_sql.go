package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Create(ctx context.Context, fullName, nationalID string) (Student, error) {
	if taken, err := s.nationalIDTaken(ctx, nationalID, ""); err != nil {
		return Student{}, err
	} else if taken {
		return Student{}, ErrDuplicateNationalID
	}
	st := Student{
		ID:         uuid.NewString(),
		FullName:   fullName,
		NationalID: nationalID,
		CreatedAt:  time.Now().Unix(),
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO students (id,full_name,national_id,created_at) VALUES ($1,$2,$3,$4)`,
		st.ID, st.FullName, st.NationalID, st.CreatedAt)
	if err != nil {
		return Student{}, fmt.Errorf("insert student: %w", err)
	}
	return st, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (Student, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,full_name,national_id,created_at FROM students WHERE id=$1`, id)
	return scanStudent(row)
}

func (s *SQLStore) List(ctx context.Context) ([]Student, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,full_name,national_id,created_at FROM students ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Student{}
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *SQLStore) Update(ctx context.Context, st Student) (Student, error) {
	if taken, err := s.nationalIDTaken(ctx, st.NationalID, st.ID); err != nil {
		return Student{}, err
	} else if taken {
		return Student{}, ErrDuplicateNationalID
	}
	res, err := s.db.ExecContext(ctx, `UPDATE students SET full_name=$1, national_id=$2 WHERE id=$3`,
		st.FullName, st.NationalID, st.ID)
	if err != nil {
		return Student{}, fmt.Errorf("update student: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Student{}, ErrNotFound
	}
	return s.Get(ctx, st.ID)
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM quiz_submissions WHERE student_id=$1 LIMIT 1`, id).Scan(&one)
	if err == nil {
		return ErrHasSubmissions
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) LookupOrCreate(ctx context.Context, fullName, nationalID string) (Student, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,full_name,national_id,created_at FROM students WHERE national_id=$1`, nationalID)
	st, err := scanStudent(row)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Student{}, err
	}
	return s.Create(ctx, fullName, nationalID)
}

func (s *SQLStore) BulkUpsert(ctx context.Context, students []Student) (inserted, updated int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	now := time.Now().Unix()
	for _, st := range students {
		if st.FullName == "" || st.NationalID == "" {
			return inserted, updated, errors.New("full_name and national_id are required")
		}
		var existingID string
		err = tx.QueryRowContext(ctx, `SELECT id FROM students WHERE national_id=$1`, st.NationalID).Scan(&existingID)
		switch {
		case err == nil:
			if _, err = tx.ExecContext(ctx, `UPDATE students SET full_name=$1 WHERE id=$2`, st.FullName, existingID); err != nil {
				return inserted, updated, err
			}
			updated++
		case errors.Is(err, sql.ErrNoRows):
			if _, err = tx.ExecContext(ctx, `INSERT INTO students (id,full_name,national_id,created_at) VALUES ($1,$2,$3,$4)`,
				uuid.NewString(), st.FullName, st.NationalID, now); err != nil {
				return inserted, updated, err
			}
			inserted++
		default:
			return inserted, updated, err
		}
	}
	return
}

func (s *SQLStore) nationalIDTaken(ctx context.Context, nationalID, excludeID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM students WHERE national_id=$1 AND id<>$2`, nationalID, excludeID).Scan(&one)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, err
}

func scanStudent(row interface{ Scan(dest ...any) error }) (Student, error) {
	var st Student
	err := row.Scan(&st.ID, &st.FullName, &st.NationalID, &st.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Student{}, ErrNotFound
	}
	if err != nil {
		return Student{}, err
	}
	return st, nil
}
