package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nguyenchibao12/job-backend/config"
	"github.com/nguyenchibao12/job-backend/infra/queue"
	"github.com/nguyenchibao12/job-backend/internal/api/rest/handlers"
	"github.com/nguyenchibao12/job-backend/internal/domain"
	"github.com/nguyenchibao12/job-backend/internal/helper"
	"github.com/nguyenchibao12/job-backend/internal/interfaces"
	"github.com/nguyenchibao12/job-backend/internal/mailer"
	"github.com/nguyenchibao12/job-backend/internal/repository"
	"github.com/nguyenchibao12/job-backend/internal/services"
	"github.com/nguyenchibao12/job-backend/pkg/cloudinary"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Job{},
		&domain.Application{},
		&domain.Blog{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	var uploader interfaces.Uploader
	if cfg.CloudinaryUrl != "" {
		cld, err := cloudinary.New()
		if err != nil {
			log.Fatalf("cloudinary init error: %v", err)
		}
		uploader = cloudinary.NewCloudinaryUploader(cld)
	} else {
		log.Println("CLOUDINARY_URL not set, image uploads disabled")
	}

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	blogRepo := repository.NewBlogRepository(db)

	// ---------- Services ----------
	userSvc := services.NewUserService(userRepo, authHelper, uploader, kafkaProducer)
	jobSvc := services.NewJobService(jobRepo, appRepo, uploader, kafkaProducer)
	appSvc := services.NewApplicationService(appRepo, jobRepo, kafkaProducer)
	blogSvc := services.NewBlogService(blogRepo, uploader)

	// ---------- Handlers ----------
	handlers.NewUserHandler(userSvc, authHelper).SetupRoutes(app)
	handlers.NewJobHandler(jobSvc, authHelper).SetupRoutes(app)
	handlers.NewApplicationHandler(appSvc, authHelper).SetupRoutes(app)
	handlers.NewBlogHandler(blogSvc, authHelper).SetupRoutes(app)

	// ---------- Mailer ----------
	if cfg.KafkaBroker != "" {
		mailSvc := mailer.NewMailService(
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SMTPUser,
			cfg.SMTPPassword,
			cfg.MailFrom,
			cfg.MailFromName,
			cfg.AdminEmail,
			cfg.FrontendURL,
		)
		consumer := queue.NewKafkaConsumer(
			cfg.KafkaBroker,
			cfg.KafkaTopic,
			cfg.KafkaGroupID,
			cfg.KafkaUsername,
			cfg.KafkaPassword,
			mailer.NewMailHandler(mailSvc),
		)
		go consumer.Listen()
	} else {
		log.Println("KAFKA_BROKER not set, mail notifications disabled")
	}

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}
