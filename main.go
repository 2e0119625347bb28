package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/flashapp/flash-api/blob"
	"github.com/flashapp/flash-api/config"
	"github.com/flashapp/flash-api/handlers"
	"github.com/flashapp/flash-api/middleware"
	"github.com/flashapp/flash-api/notify"
	"github.com/flashapp/flash-api/store"
	"github.com/flashapp/flash-api/study"
)

func init() {
	// Load .env file if not in a deployed environment
	if os.Getenv("APP_ENV") == "" || os.Getenv("APP_ENV") == "local" {
		if err := godotenv.Load(); err != nil {
			zlog.Warn().Err(err).Msg(".env file not found, relying on environment variables")
		}
	}
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return zlog.Logger
}

func blobStoreFor(cfg *config.Config) (blob.Store, error) {
	return blob.NewS3Store(context.Background(), cfg)
}

func main() {
	cfg := config.MustLoad()
	log := newLogger(cfg.AppEnv)

	db, err := config.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	blobStore, err := blobStoreFor(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("blob store setup failed")
	}

	clock := notify.RealClock()
	h := handlers.New(
		store.NewGormStore(db),
		blobStore,
		notify.NewHub(clock),
		study.NewRegistry(clock),
		cfg,
		log,
	)

	requireSession := middleware.RequireSession(h.Store, []byte(cfg.JWTSecret), log)

	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/auth/signup", h.Signup)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/me", requireSession(h.Me))

	// Courses
	mux.HandleFunc("GET /api/courses", requireSession(h.ListCourses))
	mux.HandleFunc("POST /api/courses", requireSession(h.CreateCourse))
	mux.HandleFunc("GET /api/courses/{courseID}", requireSession(h.GetCourse))
	mux.HandleFunc("DELETE /api/courses/{courseID}", requireSession(h.DeleteCourse))

	// Flashcards
	mux.HandleFunc("GET /api/courses/{courseID}/flashcards", requireSession(h.ListFlashcards))
	mux.HandleFunc("POST /api/courses/{courseID}/flashcards", requireSession(h.CreateFlashcard))
	mux.HandleFunc("DELETE /api/courses/{courseID}/flashcards/{flashcardID}", requireSession(h.DeleteFlashcard))

	// Study navigator
	mux.HandleFunc("POST /api/courses/{courseID}/study", requireSession(h.StartStudySession))
	mux.HandleFunc("GET /api/study/{sessionID}", requireSession(h.GetStudySession))
	mux.HandleFunc("POST /api/study/{sessionID}/next", requireSession(h.NextCard))
	mux.HandleFunc("POST /api/study/{sessionID}/previous", requireSession(h.PreviousCard))
	mux.HandleFunc("POST /api/study/{sessionID}/flip", requireSession(h.FlipCard))
	mux.HandleFunc("DELETE /api/study/{sessionID}", requireSession(h.LeaveStudySession))

	// Profile & notifications
	mux.HandleFunc("GET /api/profile", requireSession(h.GetProfile))
	mux.HandleFunc("PUT /api/profile", requireSession(h.UpdateProfile))
	mux.HandleFunc("POST /api/profile/avatar", requireSession(h.UploadAvatar))
	mux.HandleFunc("GET /api/notifications", requireSession(h.GetNotification))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(mux)

	serverAddr := "0.0.0.0:" + cfg.Port
	log.Info().Str("addr", serverAddr).Msg("starting server")
	if err := http.ListenAndServe(serverAddr, corsHandler); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
