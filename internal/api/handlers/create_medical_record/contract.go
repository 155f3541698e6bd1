package create_medical_record

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/service/medical/models"
)

type MedicalService interface {
	Create(ctx context.Context, req *models.CreateRecordRequest) (*models.RecordResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
