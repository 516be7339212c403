package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	api "clubhub/api/http"
	"clubhub/internal/domain/access"
	"clubhub/internal/domain/event"
	"clubhub/internal/models"
	"clubhub/internal/notify"
	pgrepo "clubhub/repositories/postgres"
	"clubhub/storage/adapters/redis"
)

func main() {
	// Загружаем .env автоматически
	if err := godotenv.Load(); err != nil {
		log.Println("Не найден .env, используем переменные окружения")
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("❌ DATABASE_DSN не найден в .env или окружении")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Не удалось подключиться к Postgres: %v", err)
	}

	if err := db.AutoMigrate(
		&models.EventGORM{},
		&models.EventSessionGORM{},
		&models.EventAttendeeGORM{},
		&models.UserGORM{},
		&models.UserPermissionGORM{},
	); err != nil {
		log.Fatalf("❌ Миграция схемы: %v", err)
	}

	// Кэш решений о правах поверх таблицы user_permissions
	redisClient := redis.NewClient(redis.Config{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB(),
	})
	defer redisClient.Close()

	var perms access.PermissionChecker = pgrepo.NewPermissionRepository(db)
	perms = redis.NewPermissionCache(redisClient, perms, permissionTTL())

	// Уведомления организаторам (опционально)
	var notifier notify.Notifier
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64)
		if err != nil {
			log.Fatal("❌ TELEGRAM_CHAT_ID должен быть числом")
		}
		tg, err := notify.NewTelegramNotifier(token, chatID)
		if err != nil {
			log.Fatalf("❌ Telegram notifier: %v", err)
		}
		notifier = tg
		log.Println("✅ Telegram-уведомления включены")
	}

	eventRepo := pgrepo.NewEventRepository(db)
	attendeeRepo := pgrepo.NewAttendeeRepository(db)
	eventService := event.NewService(eventRepo, attendeeRepo, perms, notifier)

	app := fiber.New()
	api.Setup(app, api.NewHandlers(eventService))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("✅ Сервер запущен на :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}

func redisDB() int {
	n, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil {
		return 0
	}
	return n
}

func permissionTTL() time.Duration {
	seconds, err := strconv.Atoi(os.Getenv("PERMISSION_CACHE_TTL_SECONDS"))
	if err != nil || seconds <= 0 {
		return 0 // адаптер подставит значение по умолчанию
	}
	return time.Duration(seconds) * time.Second
}
