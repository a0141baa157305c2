package migrations

import (
	"context"
	"errors"
	"fmt"

	"curtain_store/internal/models"
	"curtain_store/internal/repository"
	"curtain_store/internal/services"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	// Reset drops every table first. Only the init-db script sets it.
	Reset         bool
	AdminUsername string
	AdminPassword string
}

// RunMigrations migrates the schema and creates the default admin and catalog.
func RunMigrations(ctx context.Context, db *gorm.DB, opts Options, log *zap.Logger) error {
	log.Info("running database migrations")

	if opts.Reset {
		log.Warn("dropping existing tables")
		if err := db.Migrator().DropTable(models.All()...); err != nil {
			log.Warn("error dropping tables", zap.Error(err))
		}
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := createDefaultAdmin(ctx, db, opts, log); err != nil {
		log.Warn("failed to create default admin", zap.Error(err))
	}
	if err := createDefaultCatalog(ctx, db, log); err != nil {
		log.Warn("failed to create default catalog", zap.Error(err))
	}

	log.Info("database migrations completed")
	return nil
}

func createDefaultAdmin(ctx context.Context, db *gorm.DB, opts Options, log *zap.Logger) error {
	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo)

	username := opts.AdminUsername
	if username == "" {
		username = "admin"
	}
	_, err := userRepo.GetByUsername(ctx, username)
	if err == nil {
		log.Info("super admin user already exists", zap.String("username", username))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password := opts.AdminPassword
	generated := password == ""
	if generated {
		password = uuid.NewString()[:18]
	}

	superAdmin := &models.User{
		Username: username,
		Email:    username + "@localhost",
		Role:     string(models.SuperAdmin),
	}
	if err := userService.CreateUser(ctx, superAdmin, password); err != nil {
		return err
	}

	fields := []zap.Field{zap.String("username", username)}
	if generated {
		// Shown once; set ADMIN_PASSWORD to choose it instead.
		fields = append(fields, zap.String("password", password))
	}
	log.Warn("super admin user created", fields...)
	return nil
}

func createDefaultCatalog(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	productRepo := repository.NewProductRepository(db)
	existing, err := productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info("catalog already seeded", zap.Int("products", len(existing)))
		return nil
	}

	for i := range defaultProducts {
		p := defaultProducts[i]
		if err := productRepo.Create(ctx, &p); err != nil {
			return fmt.Errorf("failed to create product %q: %w", p.Name, err)
		}
	}

	imageRepo := repository.NewCategoryImageRepository(db)
	for i := range defaultCategoryImages {
		img := defaultCategoryImages[i]
		if err := imageRepo.Add(ctx, &img); err != nil {
			return fmt.Errorf("failed to create category image for %s: %w", img.Category, err)
		}
	}

	log.Info("default catalog created",
		zap.Int("products", len(defaultProducts)),
		zap.Int("category_images", len(defaultCategoryImages)),
	)
	return nil
}

var defaultProducts = []models.Product{
	{
		Name: "Smart Sliding Curtain", Category: string(models.CategorySliding), CurtainType: "sliding",
		Price: 36000, InStock: true,
		Description: "Motorised sliding track curtain, priced per set with track charged by width.",
		Features:    []string{"Silent motor", "App control", "Schedules"},
	},
	{
		Name: "Smart Roller Blind", Category: string(models.CategoryRoller), CurtainType: "roller",
		Price: 28000, InStock: true,
		Description: "Tubular-motor roller blind for windows up to 10 feet.",
		Features:    []string{"Blackout fabric", "App control"},
	},
	{
		Name: "Wi-Fi Curtain Motor", Category: string(models.CategoryMotor), MotorType: "wifi",
		Price: 18000, InStock: true,
		Description: "Works directly with the home router, no hub needed.",
		Features:    []string{"Voice assistants", "Manual pull start"},
	},
	{
		Name: "Zigbee Curtain Motor", Category: string(models.CategoryMotor), MotorType: "zigbee",
		Price: 16500, InStock: true,
		Description: "Low-power Zigbee motor. Requires a Zigbee hub.",
		Features:    []string{"Mesh network", "Low standby power"},
	},
	{
		Name: "Zigbee Hub", Category: string(models.CategoryAccessory), MotorType: "zigbee",
		Price: 6500, InStock: true,
		Description: "Bridges Zigbee motors to the app.",
	},
	{
		Name: "Remote Control", Category: string(models.CategoryAccessory),
		Price: 1500, InStock: true,
		Description: "Five-channel RF remote.",
	},
}

var defaultCategoryImages = []models.CategoryImage{
	{Category: string(models.CategorySliding), Title: "Sliding curtains", ImageURL: "/uploads/categories/sliding.jpg", SortOrder: 1},
	{Category: string(models.CategoryRoller), Title: "Roller blinds", ImageURL: "/uploads/categories/roller.jpg", SortOrder: 2},
	{Category: string(models.CategoryMotor), Title: "Motors", ImageURL: "/uploads/categories/motor.jpg", SortOrder: 3},
	{Category: string(models.CategoryAccessory), Title: "Accessories", ImageURL: "/uploads/categories/accessory.jpg", SortOrder: 4},
}
