package roster

import "context"

type Store interface {
	Create(ctx context.Context, fullName, nationalID string) (Student, error)
	Get(ctx context.Context, id string) (Student, error)
	List(ctx context.Context) ([]Student, error) // by full name ascending
	Update(ctx context.Context, st Student) (Student, error)
	Delete(ctx context.Context, id string) error

	// LookupOrCreate is the student login path: returns the existing
	// student with the given national id, or registers a new one.
	LookupOrCreate(ctx context.Context, fullName, nationalID string) (Student, error)

	// BulkUpsert imports students keyed on national id: existing rows
	// get their full name refreshed, unknown ids are inserted.
	BulkUpsert(ctx context.Context, students []Student) (inserted, updated int, err error)
}
