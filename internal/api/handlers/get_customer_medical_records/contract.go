package get_customer_medical_records

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/service/medical/models"
)

type MedicalService interface {
	GetByCustomerID(ctx context.Context, customerID string) ([]*models.RecordResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
