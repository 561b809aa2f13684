package auth

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ikhtibar-app/ikhtibar/internal/db"
)

func TestAdminLoginHandler(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	if err := db.EnsureSchema(context.Background(), sqlDB, db.DriverSQLite); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := sqlDB.Exec(`INSERT INTO admins (id,username,password_hash,created_at) VALUES ($1,$2,$3,$4)`,
		"adm-1", "admin", string(hash), time.Now().Unix()); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	a := NewAuthService("secret", time.Hour)
	h := AdminLoginHandler(sqlDB, a)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/admin", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	if rec := post(`{"username":"admin"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing password: %d", rec.Code)
	}
	if rec := post(`{"username":"nobody","password":"x"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user: %d", rec.Code)
	}
	if rec := post(`{"username":"admin","password":"wrong"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: %d", rec.Code)
	}

	rec := post(`{"username":"admin","password":"correct horse"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "access_token") {
		t.Fatalf("body: %s", rec.Body.String())
	}

	tokStart := strings.Index(rec.Body.String(), `"access_token":"`)
	if tokStart < 0 {
		t.Fatal("no token in body")
	}
	rest := rec.Body.String()[tokStart+len(`"access_token":"`):]
	tok := rest[:strings.Index(rest, `"`)]
	claims, err := a.Parse(tok)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Role != "admin" || claims.Sub != "adm-1" {
		t.Fatalf("claims = %+v", claims)
	}
}
