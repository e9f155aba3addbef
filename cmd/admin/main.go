package main

import (
	"github.com/Tamoora69/abdeen-barber-shop/internal/appointments/handler"
	"github.com/Tamoora69/abdeen-barber-shop/internal/appointments/repository"
	"github.com/Tamoora69/abdeen-barber-shop/internal/appointments/service"
	"github.com/Tamoora69/abdeen-barber-shop/internal/appointments/validator"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/app"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/config"
)

const ServiceName = "admin"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	if cfg.AdminPassword == "" {
		cfg.Log.Fatal("ADMIN_PASSWORD must be set for the admin service")
	}

	cfg.Log.Info("Starting Admin service")
	appointmentService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.RequireAdminAuth()
	serverApp.OnShutdown(func() {
		cfg.Client.GracefulShutdown(cfg.Log)
	})
	serverApp.SetApp(handler.NewAdminHandler(appointmentService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.AppointmentService {
	appointmentValidator := validator.NewAppointmentValidator(cfg.Log)
	appointmentRepo := repository.NewMongoAppointmentRepository(cfg)

	// The admin surface only lists and deletes; nothing it does feeds the
	// change stream, so no producer is wired in.
	appointmentService := service.NewAppointmentService(
		appointmentRepo,
		nil,
		appointmentValidator,
		cfg,
	)

	cfg.Log.Info("Admin service initialized", "database", cfg.MongoDatabaseName)
	return appointmentService
}
