package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/streadway/amqp"

	"recipebox/internal/handlers"
	"recipebox/internal/middleware"
	"recipebox/internal/models"
	"recipebox/internal/repositories"
	"recipebox/internal/services"
	"recipebox/internal/storage"
	"recipebox/pkg/rabbitmq"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "recipebox.db")
	viper.SetDefault("MEDIA_ROOT", "media")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	db, err := openDatabase(viper.GetString("DB_DRIVER"), viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Token{}, &models.Tag{}, &models.Ingredient{}, &models.Recipe{})
	if err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- Media storage ---
	imageStore, err := storage.NewImageStore(viper.GetString("MEDIA_ROOT"))
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// Without a broker the app still runs; recipe events are simply skipped.
	var mqClient *rabbitmq.Client
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, recipe events disabled: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	tokenRepo := repositories.NewGORMTokenRepository(db)
	tagRepo := repositories.NewGORMTagRepository(db)
	ingredientRepo := repositories.NewGORMIngredientRepository(db)
	recipeRepo := repositories.NewGORMRecipeRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, tokenRepo)
	tagService := services.NewTagService(tagRepo)
	ingredientService := services.NewIngredientService(ingredientRepo)
	var publisher services.EventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	recipeService := services.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, imageStore, publisher)

	// Optional superuser provisioning at boot.
	seedSuperuser(authService)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(authService)
	tagHandler := handlers.NewTagHandler(tagService)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService)
	recipeHandler := handlers.NewRecipeHandler(recipeService)

	// --- Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	authRequired := middleware.AuthRequired(authService)

	// --- API Routes ---
	userHandler.RegisterRoutes(app, authRequired)

	recipeGroup := app.Group("/recipe", authRequired)
	tagHandler.RegisterRoutes(recipeGroup)
	ingredientHandler.RegisterRoutes(recipeGroup)
	recipeHandler.RegisterRoutes(recipeGroup)

	// Uploaded images are served from the media root.
	app.Static("/media", viper.GetString("MEDIA_ROOT"))

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for recipe events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received recipe event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeRecipeEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase opens a GORM connection with the configured driver.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

// seedSuperuser provisions an admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are configured. Re-running against an existing account is a
// no-op.
func seedSuperuser(authService *services.AuthService) {
	email := viper.GetString("ADMIN_EMAIL")
	password := viper.GetString("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	user, err := authService.CreateSuperuser(email, password, "Admin")
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return
		}
		log.Printf("Failed to seed superuser %s: %v", email, err)
		return
	}
	log.Printf("Seeded superuser: %s (ID: %s)", user.Email, user.ID)
}
