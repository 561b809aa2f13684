package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ikhtibar-app/ikhtibar/internal/roster"
)

// POST /auth/admin  { "username": "...", "password": "..." }
func AdminLoginHandler(db *sql.DB, a *AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Username == "" || req.Password == "" {
			http.Error(w, "username and password required", http.StatusBadRequest)
			return
		}

		var id, hash string
		err := db.QueryRowContext(r.Context(),
			`SELECT id, password_hash FROM admins WHERE username=$1`, req.Username).Scan(&id, &hash)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "invalid username or password", http.StatusUnauthorized)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
			http.Error(w, "invalid username or password", http.StatusUnauthorized)
			return
		}

		tok, err := a.IssueJWT(id, req.Username, "admin")
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": tok,
			"admin":        map[string]string{"id": id, "username": req.Username},
		})
	}
}

// POST /auth/student  { "full_name": "...", "national_id": "..." }
// Students are looked up by national id and registered on first login.
func StudentLoginHandler(store roster.Store, a *AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			FullName   string `json:"full_name"`
			NationalID string `json:"national_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req.FullName = strings.TrimSpace(req.FullName)
		req.NationalID = strings.TrimSpace(req.NationalID)
		if req.FullName == "" || req.NationalID == "" {
			http.Error(w, "full_name and national_id required", http.StatusBadRequest)
			return
		}

		st, err := store.LookupOrCreate(r.Context(), req.FullName, req.NationalID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		tok, err := a.IssueJWT(st.ID, st.FullName, "student")
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": tok,
			"student":      st,
		})
	}
}
