package seed

import (
	"context"
	"errors"
	"time"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Options configures the initial data pass run on startup.
type Options struct {
	AdminEmail    string
	AdminPassword string
}

type sampleStream struct {
	title          string
	thumbnail      string
	streamerName   string
	streamerAvatar string
	category       string
	viewerCount    int
	vipOnly        bool
}

var sampleStreams = []sampleStream{
	{
		title:          "Live Exclusiva - Bate Papo Intimista",
		thumbnail:      "https://images.unsplash.com/photo-1516280440614-37939bbacd81?w=500&h=300&fit=crop",
		streamerName:   "Ana Premium",
		streamerAvatar: "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=100&h=100&fit=crop&crop=face",
		category:       "Lifestyle",
		viewerCount:    150,
		vipOnly:        true,
	},
	{
		title:          "Música ao Vivo - Covers Exclusivos",
		thumbnail:      "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=500&h=300&fit=crop",
		streamerName:   "Lucas Music",
		streamerAvatar: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=100&h=100&fit=crop&crop=face",
		category:       "Música",
		viewerCount:    89,
		vipOnly:        false,
	},
	{
		title:          "Treino Premium - Funcional Avançado",
		thumbnail:      "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=500&h=300&fit=crop",
		streamerName:   "Carla Fit",
		streamerAvatar: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=100&h=100&fit=crop&crop=face",
		category:       "Fitness",
		viewerCount:    234,
		vipOnly:        true,
	},
	{
		title:          "Gaming Session - Gameplay Comentado",
		thumbnail:      "https://images.unsplash.com/photo-1542751371-adc38448a05e?w=500&h=300&fit=crop",
		streamerName:   "Pedro Games",
		streamerAvatar: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=100&h=100&fit=crop&crop=face",
		category:       "Games",
		viewerCount:    67,
		vipOnly:        false,
	},
}

// Run creates the admin account, a sample catalog and a premium test
// user when the store is empty. Safe to run on every startup.
func Run(ctx context.Context, streams ports.StreamRepository, users ports.UserRepository, admins ports.AdminRepository, payments ports.PaymentRepository, opts Options, logger *zap.SugaredLogger) error {
	if err := seedAdmin(ctx, admins, opts); err != nil {
		return err
	}
	logger.Infow("admin account ready", "email", opts.AdminEmail)

	if err := seedStreams(ctx, streams); err != nil {
		return err
	}

	if err := seedTestUser(ctx, users, payments); err != nil {
		return err
	}
	logger.Infow("seed data ready")
	return nil
}

func seedAdmin(ctx context.Context, admins ports.AdminRepository, opts Options) error {
	if _, err := admins.GetByEmail(ctx, opts.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrAdminNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return admins.Create(ctx, &domain.AdminUser{
		ID:           uuid.New(),
		Email:        opts.AdminEmail,
		PasswordHash: string(hash),
		Name:         "Administrador",
		CreatedAt:    time.Now(),
	})
}

func seedStreams(ctx context.Context, streams ports.StreamRepository) error {
	count, err := streams.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, s := range sampleStreams {
		stream := &domain.Stream{
			ID:             domain.StreamID(uuid.NewString()),
			Title:          s.title,
			Thumbnail:      s.thumbnail,
			VideoURL:       "",
			StreamerName:   s.streamerName,
			StreamerAvatar: s.streamerAvatar,
			Category:       s.category,
			ViewerCount:    s.viewerCount,
			VIPOnly:        s.vipOnly,
			Live:           true,
			CreatedAt:      time.Now(),
		}
		if err := streams.Create(ctx, stream); err != nil {
			return err
		}
	}
	return nil
}

func seedTestUser(ctx context.Context, users ports.UserRepository, payments ports.PaymentRepository) error {
	const testEmail = "usuario@teste.com"
	const testOrderID = "test-order-123"

	until := time.Now().Add(30 * 24 * time.Hour)

	user, err := users.GetByEmail(ctx, testEmail)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		user = &domain.User{
			ID:           uuid.New(),
			Email:        testEmail,
			Name:         "Usuário Teste",
			Premium:      true,
			PremiumUntil: &until,
			CreatedAt:    time.Now(),
		}
		if err := users.Upsert(ctx, user); err != nil {
			return err
		}
	}

	if _, err := payments.GetByOrderID(ctx, testOrderID); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrPaymentNotFound) {
		return err
	}

	return payments.Create(ctx, &domain.Payment{
		ID:         uuid.New(),
		UserID:     user.ID,
		OrderID:    testOrderID,
		PlanType:   "monthly",
		Amount:     49.90,
		Status:     "completed",
		ValidUntil: until,
		CreatedAt:  time.Now(),
	})
}
