package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// validate é seguro para uso concorrente e guarda o cache das structs
var validate = validator.New(validator.WithRequiredStructEnabled())

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("erro ao codificar resposta")
	}
}

func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// validationDetails lista os campos rejeitados pelo validator
func validationDetails(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[fieldErr.Field()] = fieldErr.Tag()
	}
	return details
}

func writeValidationError(w http.ResponseWriter, err error) {
	apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetros inválidos", validationDetails(err))
}

// writeServiceError separa recurso inexistente de falha de carga
func writeServiceError(w http.ResponseWriter, err error, loadMessage string) {
	code := apiErrors.CodeFor(err, apiErrors.ErrLoadFailed)
	if code == apiErrors.ErrLoadFailed {
		apiErrors.WriteError(w, code, loadMessage, nil)
		return
	}
	apiErrors.WriteError(w, code, rootMessage(err), nil)
}

func rootMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrCustomerNotFound,
		domain.ErrCommunicationNotFound,
		domain.ErrRegionNotFound,
		domain.ErrInvalidPeriod,
		domain.ErrInvalidMonth,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func parsePeriod(startDate, endDate string) (domain.Period, error) {
	start, err := time.Parse(time.DateOnly, startDate)
	if err != nil {
		return domain.Period{}, domain.ErrInvalidPeriod
	}

	end, err := time.Parse(time.DateOnly, endDate)
	if err != nil {
		return domain.Period{}, domain.ErrInvalidPeriod
	}

	period := domain.Period{StartDate: start, EndDate: end}
	return period, period.Validate()
}

// queryInt lê um inteiro opcional da query string; ausente vira zero
func queryInt(r *http.Request, key string) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}
