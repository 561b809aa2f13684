package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckerHas(t *testing.T) {
	c := NewChecker(map[string][]string{
		"admin":   {"*"},
		"student": {"quiz:view", "answer:save"},
		"grader":  {"results:*"},
	})

	cases := []struct {
		role, perm string
		want       bool
	}{
		{"admin", "quiz:delete", true},
		{"student", "quiz:view", true},
		{"student", "quiz:delete", false},
		{"grader", "results:view", true},
		{"grader", "quiz:view", false},
		{"unknown", "quiz:view", false},
	}
	for _, tc := range cases {
		if got := c.Has(tc.role, tc.perm); got != tc.want {
			t.Errorf("Has(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}

	if !c.Any("student", "quiz:delete", "answer:save") {
		t.Error("Any missed a granted permission")
	}
	if c.Any("student", "quiz:delete", "quiz:update") {
		t.Error("Any granted without any permission")
	}
}

func TestDefaultRoles(t *testing.T) {
	c := NewChecker(nil)

	for _, perm := range []string{"quiz:view", "answer:save", "quiz:submit", "submission:view-own"} {
		if !c.Has("student", perm) {
			t.Errorf("student missing %q", perm)
		}
	}
	for _, perm := range []string{"quiz:create", "students:manage", "results:view"} {
		if c.Has("student", perm) {
			t.Errorf("student granted %q", perm)
		}
		if !c.Has("admin", perm) {
			t.Errorf("admin missing %q", perm)
		}
	}
}

func TestRequireMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := Require("quiz:create")(ok)

	req := httptest.NewRequest(http.MethodPost, "/quizzes", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("no role: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(WithRole(req.Context(), "student")))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(WithRole(req.Context(), "admin")))
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: %d", rec.Code)
	}

	any := RequireAny("submission:view-own", "results:view")(ok)
	rec = httptest.NewRecorder()
	any.ServeHTTP(rec, req.WithContext(WithRole(req.Context(), "student")))
	if rec.Code != http.StatusOK {
		t.Fatalf("student via RequireAny: %d", rec.Code)
	}
}
