package main

import (
	"context"
	"crypto/rand"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"

	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/cms"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/config"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/httpserver"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/i18n"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/middleware"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/offers"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/session"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/internal/view"
	"github.com/lyubomiriliev/MBCenter-Website-sub001/templates"
)

func main() {
	rootCtx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bundle, err := i18n.Load(cfg.LocalesDir, cfg.DefaultLocale, cfg.Locales())
	if err != nil {
		log.Fatalf("load locales: %v", err)
	}

	engine, err := view.NewEngine(templates.FS())
	if err != nil {
		log.Fatalf("build view engine: %v", err)
	}

	var blockKey []byte
	if cfg.SessionBlockKey != "" {
		blockKey = []byte(cfg.SessionBlockKey)
	}
	sessions, err := session.NewManager(session.Config{
		HashKey:      sessionKey(cfg.SessionHashKey, cfg.IsLocal()),
		BlockKey:     blockKey,
		CookieSecure: !cfg.IsLocal(),
	})
	if err != nil {
		log.Fatalf("build session manager: %v", err)
	}

	authenticator, offerService := buildBackends(rootCtx, cfg)

	srv := httpserver.New(httpserver.Config{
		Address:       cfg.Address,
		ReadTimeout:   cfg.ReadTimeout,
		Bundle:        bundle,
		Engine:        engine,
		Sessions:      sessions,
		Authenticator: authenticator,
		Offers:        offerService,
		Content:       cms.NewStore(cfg.ContentDir),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	log.Printf("web server listening on %s (default locale %s)", cfg.Address, cfg.DefaultLocale)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		os.Exit(1)
	}
}

// sessionKey returns the configured hash key; in local runs without one a
// throwaway key is generated, which invalidates sessions on restart.
func sessionKey(configured string, local bool) []byte {
	if configured != "" {
		return []byte(configured)
	}
	if !local {
		log.Fatalf("session hash key is required")
	}
	log.Printf("MBC_SESSION_HASH_KEY not set; using a generated throwaway key")
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("generate session key: %v", err)
	}
	return key
}

// buildBackends wires the identity provider and the offer store. Without a
// Firebase project both fall back to local stand-ins: the passthrough
// authenticator and the in-memory offer service.
func buildBackends(ctx context.Context, cfg config.Config) (middleware.Authenticator, offers.Service) {
	if cfg.FirebaseProjectID == "" {
		log.Printf("FIREBASE_PROJECT_ID not set; using passthrough authenticator and in-memory offers")
		return middleware.DefaultAuthenticator(), offers.NewStaticService()
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID})
	if err != nil {
		log.Fatalf("initialise Firebase app: %v", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("initialise Firebase auth client: %v", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		log.Fatalf("initialise Firestore client: %v", err)
	}

	log.Printf("Firebase backends enabled (project=%s)", cfg.FirebaseProjectID)
	return middleware.NewFirebaseAuthenticator(authClient),
		offers.NewFirestoreService(firestoreClient, offers.FirestoreConfig{
			Collection: cfg.OffersCollection,
		})
}
