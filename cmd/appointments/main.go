package main

import (
	"context"

	"github.com/Tamoora69/abdeen-barber-shop/internal/appointments/feed"
	"github.com/Tamoora69/abdeen-barber-shop/internal/appointments/handler"
	"github.com/Tamoora69/abdeen-barber-shop/internal/appointments/repository"
	"github.com/Tamoora69/abdeen-barber-shop/internal/appointments/service"
	"github.com/Tamoora69/abdeen-barber-shop/internal/appointments/validator"
	"github.com/Tamoora69/abdeen-barber-shop/internal/wizard"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/app"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/config"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/kafka"
)

const ServiceName = "appointments"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Appointments service")
	appointmentService, wizardManager, cleanup := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.OnShutdown(cleanup)
	serverApp.SetApp(
		handler.NewAppointmentHandler(appointmentService, cfg.ShopWhatsApp, cfg.Log),
		wizard.NewHandler(wizardManager, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.AppointmentService, *wizard.Manager, func()) {
	appointmentValidator := validator.NewAppointmentValidator(cfg.Log)
	appointmentRepo := repository.NewMongoAppointmentRepository(cfg)

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create change-feed producer", "error", err)
	}
	publisher := feed.NewPublisher(producer, cfg.Log)

	appointmentService := service.NewAppointmentService(
		appointmentRepo,
		publisher,
		appointmentValidator,
		cfg,
	)

	notifier := feed.NewNotifier(cfg.Log)
	consumer, err := kafka.NewConsumer(
		cfg.KafkaBrokers,
		cfg.KafkaTopic,
		cfg.KafkaConsumerGroup,
		notifier.HandleMessage,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create change-feed consumer", "error", err)
	}
	consumer.Start(context.Background())

	wizardManager := wizard.NewManager(appointmentService, appointmentService, notifier, cfg.WizardSessionTTL, cfg.Log)

	cleanup := func() {
		wizardManager.Shutdown()
		if err := consumer.Close(); err != nil {
			cfg.Log.Error("Failed to close change-feed consumer", "error", err)
		}
		notifier.Shutdown()
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close change-feed producer", "error", err)
		}
		cfg.Client.GracefulShutdown(cfg.Log)
	}

	cfg.Log.Info("Appointments service initialized",
		"database", cfg.MongoDatabaseName,
		"topic", cfg.KafkaTopic,
	)
	return appointmentService, wizardManager, cleanup
}
