package routers

import (
	"clinic-booking-service/internal/app/delivery/http/controllers"
	"clinic-booking-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachVerificationRoutes(router chi.Router, middlewares *middlewares.Middlewares, verificationController *controllers.VerificationController) {
	router.Get("/", verificationController.SubmitReply)
}
