package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ikhtibar-app/ikhtibar/internal/roster"
)

func ListStudentsHandler(store roster.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students, err := store.List(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"students": students})
	}
}

func CreateStudentHandler(store roster.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req studentReq
		if err := decodeValid(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		st, err := store.Create(r.Context(), req.FullName, req.NationalID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"student": st})
	}
}

func UpdateStudentHandler(store roster.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req studentReq
		if err := decodeValid(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		st, err := store.Update(r.Context(), roster.Student{
			ID:         chi.URLParam(r, "studentID"),
			FullName:   req.FullName,
			NationalID: req.NationalID,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"student": st})
	}
}

// DeleteStudentHandler refuses to delete a student who already has
// submissions; delete the submissions' quiz first if that is intended.
func DeleteStudentHandler(store roster.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(r.Context(), chi.URLParam(r, "studentID")); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// ImportStudentsHandler ingests a multipart CSV with full_name and
// national_id columns, upserting by national id.
func ImportStudentsHandler(store roster.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		students, err := roster.ParseCSV(f)
		if err != nil {
			http.Error(w, "bad csv: "+err.Error(), http.StatusBadRequest)
			return
		}
		inserted, updated, err := store.BulkUpsert(r.Context(), students)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message":  fmt.Sprintf("imported %d students", inserted+updated),
			"inserted": inserted,
			"updated":  updated,
		})
	}
}
