package routers

import (
	"clinic-booking-service/internal/app/delivery/http/controllers"
	"clinic-booking-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachSlotRoutes(router chi.Router, middlewares *middlewares.Middlewares, slotController *controllers.SlotController) {
	router.Get("/", slotController.FindSlots)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.RequireSuperadminAPIKey)
		r.Post("/", slotController.CreateSlot)
		r.Patch("/{slotID}", slotController.UpdateMaxQuantity)
	})
}
