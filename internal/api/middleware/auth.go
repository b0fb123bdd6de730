package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-DeliverySlots/internal/api/handlers"
)

// CompanyIDHeader заголовок с ID компании, от имени которой выполняется запрос
// Проставляется API gateway после аутентификации
const CompanyIDHeader = "X-Company-ID"

const msgMissingCompanyID = "отсутствует или некорректен заголовок X-Company-ID"

type companyIDKey struct{}

// Auth кладёт ID компании из заголовка в контекст; без заголовка запрос отклоняется
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		companyID, err := strconv.ParseInt(r.Header.Get(CompanyIDHeader), 10, 64)
		if err != nil || companyID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingCompanyID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCompanyID(r.Context(), companyID)))
	})
}

// WithCompanyID кладёт ID компании в контекст (используется и в тестах обработчиков)
func WithCompanyID(ctx context.Context, companyID int64) context.Context {
	return context.WithValue(ctx, companyIDKey{}, companyID)
}

// GetCompanyID возвращает ID компании, положенный Auth
func GetCompanyID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(companyIDKey{}).(int64)
	return id, ok
}
