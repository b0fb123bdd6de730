package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DeliverySlots/internal/domain"
)

// PathInt64 читает положительное целое из переменной пути mux
func PathInt64(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return v, nil
}

// PathDate читает дату YYYY-MM-DD из переменной пути mux
func PathDate(r *http.Request, name string) (time.Time, error) {
	return domain.ParseDate(mux.Vars(r)[name])
}

// QueryDateRange читает обязательные query параметры from и to (YYYY-MM-DD)
func QueryDateRange(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()

	from, err := domain.ParseDate(q.Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("from: %w", err)
	}
	to, err := domain.ParseDate(q.Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("to: %w", err)
	}
	return from, to, nil
}
