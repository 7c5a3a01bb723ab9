package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/communicating"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

type updateCommunicationRequest struct {
	Summary *string `json:"summary" validate:"required"`
	Tags    *string `json:"tags" validate:"omitempty,max=2000"`
}

// UpdateCommunication responde PATCH /v1/communications/:id.
// Qualquer falha vira um erro genérico; o cliente deve buscar o registro de novo.
func UpdateCommunication(service communicating.Communicator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(httprouter.ParamsFromContext(r.Context()).ByName("id"), 10, 64)
		if err != nil || id <= 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID da comunicação inválido", nil)
			return
		}

		var request updateCommunicationRequest
		if err := decodeJSON(r, &request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		if err := validate.Struct(request); err != nil {
			writeValidationError(w, err)
			return
		}

		if !service.UpdateSummary(r.Context(), id, *request.Summary, request.Tags) {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Falha ao atualizar o resumo", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{"success": true})
	})
}
