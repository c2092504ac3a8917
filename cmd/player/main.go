package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"livevip/internal/core/domain"
	"livevip/internal/core/services"
	"livevip/internal/infrastructure/api"
	"livevip/internal/infrastructure/sched"
	"livevip/internal/infrastructure/storage"
	"livevip/pkg/config"
	"livevip/pkg/logger"

	"go.uber.org/zap"
)

// logSurface is a headless media surface: every playback command is
// logged instead of rendered.
type logSurface struct {
	log *zap.SugaredLogger
}

func (s *logSurface) Load(url, poster string) { s.log.Infow("load media", "url", url, "poster", poster) }
func (s *logSurface) Play()                   { s.log.Infow("play") }
func (s *logSurface) SetLoop(loop bool)       { s.log.Infow("set loop", "loop", loop) }
func (s *logSurface) SetMuted(muted bool)     { s.log.Infow("set muted", "muted", muted) }
func (s *logSurface) SetVolume(volume float64) {
	s.log.Infow("set volume", "volume", volume)
}
func (s *logSurface) EnterFullscreen() { s.log.Infow("enter fullscreen") }
func (s *logSurface) ExitFullscreen()  { s.log.Infow("exit fullscreen") }
func (s *logSurface) ShowFallback(poster string) {
	s.log.Infow("show fallback", "poster", poster)
}

func main() {
	serverURL := os.Getenv("LIVEVIP_SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}

	cfg := config.DefaultConfig()
	zapLogger := logger.New(cfg.Logging.Level, "console")
	defer zapLogger.Sync()
	log := zapLogger.Sugar()

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	store := storage.NewFileSessionStore(filepath.Join(home, ".livevip", "session.json"))

	scheduler := sched.New()
	catalog := services.NewCatalogAdapter(api.NewCatalogClient(serverURL), scheduler, cfg.Catalog.PollInterval, zapLogger)
	resolver := services.NewEntitlementResolver(api.NewEntitlementClient(serverURL), store, zapLogger)

	session := services.NewViewingSession(
		services.ViewingSessionConfig{
			WatchBudgetSeconds: cfg.Session.WatchBudgetSeconds,
			TickInterval:       cfg.Session.TickInterval,
			NavDebounce:        cfg.Session.NavDebounce,
			ResumeDelay:        cfg.Session.ResumeDelay,
			ControlsHideDelay:  cfg.Session.ControlsHideDelay,
		},
		catalog,
		resolver,
		&logSurface{log: log},
		scheduler,
		sched.Clock{},
		rand.New(rand.NewSource(time.Now().UnixNano())),
		zapLogger,
	)

	session.OnGate(func(reason domain.GateReason) {
		switch reason {
		case domain.GateVIPOnly:
			log.Infow("upgrade required: stream is VIP only")
		case domain.GateTimeExpired:
			log.Infow("upgrade required: free watch time is over")
		}
	})

	ctx := context.Background()
	session.Start(ctx)

	if email := os.Getenv("LIVEVIP_EMAIL"); email != "" {
		ent := session.Login(ctx, email)
		log.Infow("logged in", "email", ent.Email, "premium", ent.Premium)
	}

	// Give the initial catalog fetch a moment, then tune to the first
	// visible stream.
	time.Sleep(2 * time.Second)
	visible := session.VisibleStreams()
	if len(visible) == 0 {
		log.Warnw("no streams available", "hidden_vip", session.HiddenVIPCount())
	} else {
		log.Infow("catalog loaded", "streams", len(visible), "hidden_vip", session.HiddenVIPCount())
		if err := session.Select(visible[0]); err != nil {
			log.Warnw("could not select stream", "error", err)
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	session.Shutdown()
	log.Infow("player stopped", "remaining", session.RemainingClock())
}
