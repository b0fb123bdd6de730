package schedule

import "errors"

// ErrInternal возвращается при ошибках хранилища
var ErrInternal = errors.New("schedule.resolver: internal error")
