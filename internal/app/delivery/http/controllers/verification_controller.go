package controllers

import (
	"context"
	"net/http"
	"time"

	"clinic-booking-service/internal/app/contracts"
	"clinic-booking-service/internal/pkg/constvars"
	"clinic-booking-service/internal/pkg/exceptions"
	"clinic-booking-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type VerificationController struct {
	Log                 *zap.Logger
	VerificationUsecase contracts.VerificationUsecase
}

func NewVerificationController(logger *zap.Logger, verificationUsecase contracts.VerificationUsecase) *VerificationController {
	return &VerificationController{
		Log:                 logger,
		VerificationUsecase: verificationUsecase,
	}
}

// SubmitReply handles the link the patient clicks in the verification
// email. The verification ID and code travel as query parameters.
func (ctrl *VerificationController) SubmitReply(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	verificationID := r.URL.Query().Get("verificationId")
	if verificationID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrQueryParamMissing(nil, "verificationId"))
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrQueryParamMissing(nil, "code"))
		return
	}

	if err := ctrl.VerificationUsecase.SubmitReply(ctx, verificationID, code); err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.VerificationReplyAcceptedMsg, nil)
}
