package get_slot_counters

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	companyClient "github.com/m04kA/SMC-DeliverySlots/internal/integrations/companyservice"
)

// UseCase use case просмотра загрузки половин дня для администратора компании
type UseCase struct {
	calculator    LoadCalculator
	companyClient CompanyServiceClient
	maxRangeDays  int
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(calculator LoadCalculator, companyClient CompanyServiceClient, maxRangeDays int, logger Logger) *UseCase {
	if maxRangeDays <= 0 {
		maxRangeDays = domain.DefaultMaxRangeDays
	}
	return &UseCase{
		calculator:    calculator,
		companyClient: companyClient,
		maxRangeDays:  maxRangeDays,
		logger:        logger,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlotCounters: company=%d, from=%s, to=%s, actor=%d",
		req.CompanyID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), req.ActorCompanyID)

	if err := validateRequest(req, uc.maxRangeDays); err != nil {
		uc.logger.Warn("GetSlotCounters: validation failed: %v", err)
		return nil, err
	}

	// Загрузка видна только тем, кто может управлять расписанием
	allowed, err := uc.companyClient.CanManage(ctx, req.ActorCompanyID, req.CompanyID)
	if err != nil {
		if errors.Is(err, companyClient.ErrCompanyNotFound) {
			uc.logger.Warn("GetSlotCounters: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("GetSlotCounters: failed to check access for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to check access: %v", ErrInternal, err)
	}
	if !allowed {
		uc.logger.Warn("GetSlotCounters: company=%d is not allowed to view company=%d", req.ActorCompanyID, req.CompanyID)
		return nil, ErrAccessDenied
	}

	slots, err := uc.calculator.Load(ctx, req.CompanyID, req.From, req.To)
	if err != nil {
		uc.logger.Error("GetSlotCounters: failed to load counters for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to load counters: %v", ErrInternal, err)
	}

	uc.logger.Info("GetSlotCounters: company=%d, %d counters", req.CompanyID, len(slots))
	return &Response{
		CompanyID: req.CompanyID,
		From:      domain.DateOnly(req.From),
		To:        domain.DateOnly(req.To),
		Slots:     slots,
	}, nil
}

func validateRequest(req *Request, maxRangeDays int) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: company ID must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: both dates are required", ErrInvalidInput)
	}
	if domain.DateOnly(req.To).Before(domain.DateOnly(req.From)) {
		return ErrInvalidDateRange
	}
	if days := domain.DaysInRange(req.From, req.To); days > maxRangeDays {
		return fmt.Errorf("%w: %d days, max %d", ErrDateRangeTooLarge, days, maxRangeDays)
	}
	return nil
}
