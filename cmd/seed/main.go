package main

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/volatiletech/null/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"startup-platform.backend/internal/config"
	"startup-platform.backend/internal/domain/entities"
	"startup-platform.backend/internal/infrastructure/models"
	"startup-platform.backend/internal/infrastructure/repositories"
	"startup-platform.backend/internal/usecases"
	"startup-platform.backend/pkg/crypto"
	"startup-platform.backend/pkg/logger"
)

// Seeds demo accounts and two scored startups for local development.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	logger.Init(cfg.Server.Env)

	db, err := gorm.Open(postgres.Open(cfg.Database.URL()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Startup{},
		&models.ScoreRecord{},
		&models.Like{},
		&models.Comment{},
		&models.AnalyticsEvent{},
		&models.MentorshipRequest{},
		&models.TelegramEvent{},
	); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	ctx := context.Background()
	userRepo := repositories.NewUserRepository(db)
	startupRepo := repositories.NewStartupRepository(db)
	scoreRepo := repositories.NewScoreRepository(db)
	analyticsRepo := repositories.NewAnalyticsRepository(db)
	telegramEventRepo := repositories.NewTelegramEventRepository(db)
	uow := repositories.NewUnitOfWork(db)

	telegram := usecases.NewTelegramUsecase(userRepo, telegramEventRepo, usecases.LogNotificationSender{})
	matching := usecases.NewMatchingService(startupRepo, userRepo, scoreRepo, telegram)
	startupUsecase := usecases.NewStartupUsecase(startupRepo, scoreRepo, userRepo, analyticsRepo, uow, inlineEnqueuer{matching}, telegram)

	owner := seedUser(ctx, userRepo, "founder@example.com", "Alice Founder", entities.UserRoleStartupOwner, "@alice_founder")

	investor := seedUser(ctx, userRepo, "investor@example.com", "Bob Investor", entities.UserRoleInvestor, "@bob_investor")
	investor.Investor = &entities.InvestorProfile{
		Interests: []string{"agrotech", "fintech"},
		Regions:   []string{"almaty"},
	}
	if err := userRepo.Update(ctx, investor); err != nil {
		log.Fatalf("failed to update investor profile: %v", err)
	}

	mentor := seedUser(ctx, userRepo, "mentor@example.com", "Carol Mentor", entities.UserRoleMentor, "@carol_mentor")
	mentor.Mentor = &entities.MentorProfile{
		Specialties: []string{"agrotech", "product"},
		Experience:  8,
		Available:   true,
	}
	if err := userRepo.Update(ctx, mentor); err != nil {
		log.Fatalf("failed to update mentor profile: %v", err)
	}

	teamSize := 5
	region := "almaty"
	market := "1B USD"
	first, _, err := startupUsecase.Create(ctx, owner.ID, &entities.CreateStartupInput{
		Name:             "AgroSense",
		Description:      "Soil sensor network for small farms with predictive irrigation scheduling and a mobile dashboard for field workers.",
		ShortDescription: "Soil sensors with irrigation forecasts",
		Stage:            "mvp",
		Category:         "agrotech",
		TeamSize:         &teamSize,
		TractionMetrics:  map[string]float64{"users": 2500},
		MarketSize:       &market,
		Region:           &region,
		TelegramContact:  "@alice_founder",
	})
	if err != nil {
		log.Fatalf("failed to seed startup: %v", err)
	}

	smallTeam := 2
	second, _, err := startupUsecase.Create(ctx, owner.ID, &entities.CreateStartupInput{
		Name:             "PayFlow",
		Description:      "Invoice financing marketplace connecting local suppliers with short term working capital from private lenders.",
		ShortDescription: "Invoice financing for suppliers",
		Stage:            "idea",
		Category:         "fintech",
		TeamSize:         &smallTeam,
		TelegramContact:  "@alice_founder",
	})
	if err != nil {
		log.Fatalf("failed to seed startup: %v", err)
	}

	// Demo data skips moderation
	for _, id := range []uuid.UUID{first.ID, second.ID} {
		if err := db.Model(&models.Startup{}).Where("id = ?", id).
			Updates(map[string]interface{}{"is_published": true, "is_approved": true}).Error; err != nil {
			log.Fatalf("failed to publish startup: %v", err)
		}
	}

	log.Println("✅ Seeded 3 users and 2 published startups")
	log.Println("   founder@example.com / investor@example.com / mentor@example.com (password: password123)")
}

type inlineEnqueuer struct {
	matching *usecases.MatchingService
}

// Enqueue runs the refresh synchronously; the seeder has no worker loop.
func (e inlineEnqueuer) Enqueue(startupID uuid.UUID) bool {
	e.matching.RefreshMatches(context.Background(), startupID)
	return true
}

func seedUser(ctx context.Context, userRepo *repositories.UserRepository, email, name string, role entities.UserRole, handle string) *entities.User {
	if existing, err := userRepo.GetByEmail(ctx, email); err == nil {
		log.Printf("user %s already exists, skipping", email)
		return existing
	}

	hash, err := crypto.HashPassword("password123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	user := &entities.User{
		ID:               uuid.New(),
		Email:            email,
		Name:             name,
		PasswordHash:     hash,
		Role:             role,
		IsActive:         true,
		TelegramUsername: null.StringFrom(handle),
		TelegramLinked:   true,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}
