package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ravichalikanti/Retinal-Analysis/internal/config"
	"github.com/Ravichalikanti/Retinal-Analysis/internal/handlers"
	"github.com/Ravichalikanti/Retinal-Analysis/internal/repository"
	"github.com/Ravichalikanti/Retinal-Analysis/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, users repository.UserRepository, cfg *config.Config) {
	sms := services.NewSMSService(cfg.SMSBaseURL, cfg.SMSAPIKey)
	predictor := services.NewPredictor(cfg.PythonBin, cfg.PredictScript, cfg.PredictTimeout)

	authHandler := handlers.NewAuthHandler(users)
	otpHandler := handlers.NewOTPHandler(users, sms)
	accountHandler := handlers.NewAccountHandler(users)
	predictHandler := handlers.NewPredictHandler(predictor, cfg.UploadDir)

	app.Post("/signup", authHandler.Signup)
	app.Post("/login", authHandler.Login)

	app.Post("/send-otp", otpHandler.SendOTP)
	app.Post("/verify-otp", otpHandler.VerifyOTP)

	app.Post("/update-profile", accountHandler.UpdateProfile)
	app.Post("/reset-password", accountHandler.ResetPassword)

	// /predict and /analyze are served by the same proxy.
	app.Post("/predict", predictHandler.Predict)
	app.Post("/analyze", predictHandler.Predict)
}
