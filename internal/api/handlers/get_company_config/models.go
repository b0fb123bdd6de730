package get_company_config

import (
	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
	"github.com/m04kA/SMC-DeliverySlots/internal/service/config/models"
)

// GetDefaultConfigResponse возвращает конфигурацию компании, которая ещё не настроила доставку:
// все дни недели выключены, поэтому слотов нет
func GetDefaultConfigResponse(companyID int64) *models.WeeklyConfigResponse {
	return models.FromDomainWeeklyConfig(&domain.WeeklyScheduleConfig{CompanyID: companyID})
}
