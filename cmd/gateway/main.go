package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	api "github.com/ikhtibar-app/ikhtibar/internal/api/http"
	auth "github.com/ikhtibar-app/ikhtibar/internal/auth/middleware"
	"github.com/ikhtibar-app/ikhtibar/internal/config"
	"github.com/ikhtibar-app/ikhtibar/internal/db"
	"github.com/ikhtibar-app/ikhtibar/internal/quiz"
	"github.com/ikhtibar-app/ikhtibar/internal/rbac"
	"github.com/ikhtibar-app/ikhtibar/internal/roster"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	if err := ensureAdmin(ctx, dbh, cfg.AdminUser, cfg.AdminPassHash); err != nil {
		log.Fatalf("admin bootstrap: %v", err)
	}

	store := quiz.NewSQLStore(dbh, cfg.DBDriver)
	students := roster.NewSQLStore(dbh)
	authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.TokenTTL)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/admin", auth.AdminLoginHandler(dbh, authSvc))
	r.Post("/auth/student", auth.StudentLoginHandler(students, authSvc))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		// Quiz catalog: students see it without answer keys
		pr.With(rbac.Require("quiz:view")).Get("/quizzes", api.ListQuizzesHandler(store))
		pr.With(rbac.Require("quiz:view")).Get("/quizzes/{quizID}", api.GetQuizHandler(store))

		// Admin: quiz and question management
		pr.With(rbac.Require("quiz:create")).Post("/quizzes", api.CreateQuizHandler(store))
		pr.With(rbac.Require("quiz:update")).Put("/quizzes/{quizID}", api.UpdateQuizHandler(store))
		pr.With(rbac.Require("quiz:delete")).Delete("/quizzes/{quizID}", api.DeleteQuizHandler(store))
		pr.With(rbac.Require("question:create")).Post("/quizzes/{quizID}/questions", api.CreateQuestionHandler(store))
		pr.With(rbac.Require("question:update")).Put("/quizzes/{quizID}/questions/{questionID}", api.UpdateQuestionHandler(store))
		pr.With(rbac.Require("question:delete")).Delete("/quizzes/{quizID}/questions/{questionID}", api.DeleteQuestionHandler(store))

		// Admin: roster
		pr.With(rbac.Require("students:manage")).Get("/students", api.ListStudentsHandler(students))
		pr.With(rbac.Require("students:manage")).Post("/students", api.CreateStudentHandler(students))
		pr.With(rbac.Require("students:manage")).Post("/students/import", api.ImportStudentsHandler(students))
		pr.With(rbac.Require("students:manage")).Put("/students/{studentID}", api.UpdateStudentHandler(students))
		pr.With(rbac.Require("students:manage")).Delete("/students/{studentID}", api.DeleteStudentHandler(students))

		// Student flow
		pr.With(rbac.Require("answer:save")).Post("/quizzes/{quizID}/answers", api.SaveAnswerHandler(store))
		pr.With(rbac.Require("quiz:submit")).Post("/quizzes/{quizID}/submit", api.SubmitQuizHandler(store))
		pr.With(rbac.RequireAny("submission:view-own", "results:view")).
			Get("/quizzes/{quizID}/submission", api.GetSubmissionHandler(store))

		// Admin: reporting
		pr.With(rbac.Require("results:view")).Get("/quizzes/{quizID}/results", api.QuizResultsHandler(store))
		pr.With(rbac.Require("results:view")).Get("/quizzes/{quizID}/results/{studentID}", api.StudentResultHandler(store, students))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

// ensureAdmin seeds the admin account on first boot. Skipped when no
// password hash is configured or the username already exists.
func ensureAdmin(ctx context.Context, dbh *sql.DB, username, passHash string) error {
	if username == "" || passHash == "" {
		log.Println("no ADMIN_PASS_HASH set, skipping admin bootstrap")
		return nil
	}
	var one int
	err := dbh.QueryRowContext(ctx, `SELECT 1 FROM admins WHERE username=$1`, username).Scan(&one)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	_, err = dbh.ExecContext(ctx, `INSERT INTO admins (id,username,password_hash,created_at) VALUES ($1,$2,$3,$4)`,
		uuid.NewString(), username, passHash, time.Now().Unix())
	return err
}
