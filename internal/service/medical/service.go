package medical

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	medicalRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/medical"
	"github.com/m04kA/SMC-StudioService/internal/service/medical/models"
)

// Service хранилище медицинских анкет участников
// Содержимое анкеты не интерпретируется, проверяется только корректность JSON
type Service struct {
	repo         RecordRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса анкет
func NewService(repo RecordRepository, logger Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create сохраняет анкету и возвращает её с присвоенным ID
func (s *Service) Create(ctx context.Context, req *models.CreateRecordRequest) (*models.RecordResponse, error) {
	s.logger.Info("Create: participant=%s, session=%s", req.ParticipantID, req.SessionID)

	participantID := strings.TrimSpace(req.ParticipantID)
	sessionID := strings.TrimSpace(req.SessionID)
	if participantID == "" || sessionID == "" {
		s.logger.Warn("Create: participantId and sessionId are required")
		return nil, fmt.Errorf("%w: participantId and sessionId are required", ErrInvalidInput)
	}
	if len(req.Payload) == 0 || !json.Valid(req.Payload) {
		s.logger.Warn("Create: payload is not valid JSON")
		return nil, fmt.Errorf("%w: payload must be valid JSON", ErrInvalidInput)
	}

	record := &domain.MedicalRecord{
		ID:            uuid.NewString(),
		ParticipantID: participantID,
		SessionID:     sessionID,
		Payload:       append(json.RawMessage(nil), req.Payload...),
		CreatedAt:     s.timeProvider.Now(),
	}

	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.Error("Create: failed to save record: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully saved record id=%s", record.ID)
	return models.FromDomainRecord(record), nil
}

// GetByID получает анкету по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.RecordResponse, error) {
	s.logger.Info("GetByID: fetching record id=%s", id)

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, medicalRepo.ErrRecordNotFound) {
			s.logger.Warn("GetByID: record id=%s not found", id)
			return nil, ErrRecordNotFound
		}
		s.logger.Error("GetByID: repository error for record id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRecord(record), nil
}

// GetByCustomerID возвращает анкеты клиента в порядке создания
// Клиентом считается участник, поэтому поиск идёт по participantId
func (s *Service) GetByCustomerID(ctx context.Context, customerID string) ([]*models.RecordResponse, error) {
	s.logger.Info("GetByCustomerID: fetching records for customer=%s", customerID)

	if strings.TrimSpace(customerID) == "" {
		return nil, fmt.Errorf("%w: customerId is required", ErrInvalidInput)
	}

	records, err := s.repo.GetByParticipantID(ctx, customerID)
	if err != nil {
		s.logger.Error("GetByCustomerID: repository error for customer=%s: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetByCustomerID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByCustomerID: found %d records for customer=%s", len(records), customerID)
	return models.FromDomainRecordList(records), nil
}
