package rediscounter

import "errors"

var (
	// ErrScript возвращается при ошибке выполнения Lua скрипта
	ErrScript = errors.New("rediscounter: failed to run script")

	// ErrRead возвращается при ошибке чтения счётчиков
	ErrRead = errors.New("rediscounter: failed to read counters")
)
