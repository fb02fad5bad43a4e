package app

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/shuaizuo666/Task-System/auth"
	"github.com/shuaizuo666/Task-System/config"
	"github.com/shuaizuo666/Task-System/database"
	"github.com/shuaizuo666/Task-System/events"
	"github.com/shuaizuo666/Task-System/handlers"
	"github.com/shuaizuo666/Task-System/router"
	"github.com/shuaizuo666/Task-System/service"
	"github.com/shuaizuo666/Task-System/store"
	"github.com/shuaizuo666/Task-System/token"
)

// SetupAndRunApp wires the services together and serves until shutdown.
func SetupAndRunApp() error {
	if err := config.LoadENV(); err != nil {
		return err
	}

	if err := database.StartPostgreSQL(); err != nil {
		return err
	}
	defer database.ClosePostgreSQL()

	db := store.NewPostgres(database.GetDB())
	tokens := token.New([]byte(os.Getenv("JWT_SECRET")))
	hub := events.NewBroker()

	h := handlers.New(
		auth.NewService(db, tokens),
		service.NewTasks(db, hub),
		service.NewLists(db),
		service.NewStats(db),
		hub,
	)

	if mqttURL := os.Getenv("MQTT_URL"); mqttURL != "" {
		stop, err := events.StartMQTTBridge(mqttURL, hub)
		if err != nil {
			return err
		}
		defer stop()
		log.Println("MQTT event bridge started")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency}\n",
	}))

	router.SetupRoutes(app, h, tokens)
	config.AddSwaggerRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	return app.Listen(":" + port)
}
