package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"courtside/internal/config"
	"courtside/internal/database"
	"courtside/internal/domain"
	"courtside/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed: ", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	sports := repository.NewSportRepository(db)
	configs := repository.NewConfigRepository(db)

	// ================== ADMIN ==================
	log.Println("Creating admin account...")
	taken, err := users.ExistsByEmail(ctx, "admin@courtside.local")
	if err != nil {
		log.Fatal("admin lookup failed: ", err)
	}
	if !taken {
		adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin := domain.User{
			Email:        "admin@courtside.local",
			PasswordHash: string(adminHash),
			Name:         "Facility Admin",
			Role:         domain.RoleAdmin,
			IsActive:     true,
		}
		if err := users.Create(ctx, &admin); err != nil {
			log.Fatal("admin creation failed: ", err)
		}
	}
	log.Println("Admin: admin@courtside.local / admin123")

	// ================== SPORTS ==================
	existing, err := sports.List(ctx, false)
	if err != nil {
		log.Fatal("sport listing failed: ", err)
	}
	byName := make(map[string]int64, len(existing))
	for _, s := range existing {
		byName[s.Name] = s.ID
	}

	log.Println("Creating sports...")
	seedSports := []domain.Sport{
		{
			Name:         "Tennis",
			PricePerHour: 500,
			Description:  "Outdoor hard court",
			Duration:     60,
			MaxPlayers:   4,
			IsActive:     true,
		},
		{
			Name:         "Badminton",
			PricePerHour: 300,
			Description:  "Indoor court, shuttles included",
			Duration:     60,
			MaxPlayers:   4,
			IsActive:     true,
		},
		{
			Name:         "Futsal",
			PricePerHour: 1200,
			Description:  "5-a-side artificial turf",
			Duration:     60,
			MaxPlayers:   12,
			IsActive:     true,
		},
	}
	ids := make(map[string]int64, len(seedSports))
	for i := range seedSports {
		if id, ok := byName[seedSports[i].Name]; ok {
			ids[seedSports[i].Name] = id
			continue
		}
		if err := sports.Create(ctx, &seedSports[i]); err != nil {
			log.Fatal("sport creation failed: ", err)
		}
		ids[seedSports[i].Name] = seedSports[i].ID
	}

	// ================== CONFIGURATIONS ==================
	log.Println("Creating booking configurations...")
	seedConfigs := []domain.BookingConfiguration{
		{
			SportID:            ids["Tennis"],
			OpensAt:            "06:00",
			ClosesAt:           "22:00",
			SlotDuration:       60,
			AdvanceBookingDays: 7,
			BufferTime:         0,

			PeakHourPricing:     true,
			PeakStartTime:       "18:00",
			PeakEndTime:         "21:00",
			PeakPriceMultiplier: 1.5,

			IsActive: true,
		},
		{
			SportID:            ids["Badminton"],
			OpensAt:            "08:00",
			ClosesAt:           "23:00",
			SlotDuration:       60,
			AdvanceBookingDays: 3,
			BufferTime:         10,

			DifferentWeekendHours: true,
			WeekendOpensAt:        "09:00",
			WeekendClosesAt:       "21:00",

			WeekendPricing:         true,
			WeekendPriceMultiplier: 1.25,

			IsActive: true,
		},
		{
			SportID:            ids["Futsal"],
			OpensAt:            "10:00",
			ClosesAt:           "23:00",
			SlotDuration:       120,
			AdvanceBookingDays: 15,
			BufferTime:         15,

			IsActive: true,
		},
	}
	for i := range seedConfigs {
		if err := configs.UpsertConfig(ctx, &seedConfigs[i]); err != nil {
			log.Fatal("configuration upsert failed: ", err)
		}
	}

	// ================== BREAKS ==================
	log.Println("Creating maintenance breaks...")
	breaks, err := configs.ListBreaks(ctx, ids["Tennis"])
	if err != nil {
		log.Fatal("break listing failed: ", err)
	}
	if len(breaks) == 0 {
		err := configs.CreateBreak(ctx, &domain.BreakTime{
			SportID:           ids["Tennis"],
			StartTime:         "13:00",
			EndTime:           "14:00",
			Reason:            "Court maintenance",
			AppliesToWeekdays: true,
			AppliesToWeekends: false,
			IsActive:          true,
		})
		if err != nil {
			log.Fatal("break creation failed: ", err)
		}
	}

	log.Println("Seed completed.")
}
