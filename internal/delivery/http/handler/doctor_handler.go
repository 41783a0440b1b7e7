package handler

import (
	"net/http"

	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/response"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase) *DoctorHandler {
	return &DoctorHandler{doctorUsecase: doctorUsecase}
}

func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}
