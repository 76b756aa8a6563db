package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/archive"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/editor"
	"github.com/Zachkp/portfolio/internal/markdown"
	"github.com/Zachkp/portfolio/internal/notify"
	"github.com/Zachkp/portfolio/internal/objects"
	"github.com/Zachkp/portfolio/internal/server"
	"github.com/Zachkp/portfolio/internal/source"
	"github.com/Zachkp/portfolio/internal/store"
)

const cleanupInterval = 24 * time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio API",
	Long: `serve starts the HTTP API. Read endpoints take ?source=seeded (default)
or ?source=file-backed to choose between the built-in records and the content
directory. Operator routes under /api/admin need a login.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServer(ctx, appConfig)
	},
}

func init() {
	serveCmd.Flags().String("port", "", "port to listen on")
	bindFlag("port", serveCmd, "port")
}

func runServer(ctx context.Context, cfg config.Config) error {
	gin.SetMode(cfg.GinMode)

	files := source.New(cfg.ContentDir, markdown.NewRenderer())
	st := store.New(store.DefaultSeed(time.Now()))
	svc := content.NewService(st, store.DefaultBlurbs(), files)

	salt := cfg.IPSalt
	if salt == "" {
		salt = randomHex()
		log.Println("IP_SALT not set; visitor hashes will change on restart")
	}
	arch, err := archive.Open(cfg.DataPath, salt)
	if err != nil {
		return err
	}
	defer arch.Close()
	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")

	secret := cfg.UploadSecret
	if secret == "" {
		secret = randomHex()
		log.Println("UPLOAD_SECRET not set; upload URLs will not survive a restart")
	}

	deps := server.Deps{
		Content:    svc,
		Editor:     editor.New(cfg.ContentDir),
		Publisher:  newPublisher(cfg),
		Objects:    objects.NewLocal(cfg.UploadDir, []byte(secret), cfg.PublicBaseURL(), cfg.UploadTTL),
		Archive:    arch,
		Auth:       server.NewAuth(cfg.AdminUsername, cfg.AdminPassword),
		ResumePath: cfg.ResumePath,
		ResumeURL:  cfg.ResumeURL,
	}

	mailer := notify.NewMailer(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPass,
		To:       cfg.ToEmail,
	})
	if mailer.Configured() {
		deps.Notifier = mailer
	} else {
		log.Println("SMTP credentials not configured; contact submissions are archived only")
	}

	go cleanupLoop(ctx, arch)

	log.Printf("Serving content from %s", cfg.ContentDir)
	return server.New(deps).Run(ctx, cfg.Addr())
}

// cleanupLoop drops expired visit rows at startup and once a day after.
func cleanupLoop(ctx context.Context, arch *archive.DB) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		if _, err := arch.Cleanup(); err != nil {
			log.Printf("Error cleaning up old visitor data: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func randomHex() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal("Failed to generate random key:", err)
	}
	return hex.EncodeToString(b)
}
