// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель: упростить формирование структурированных полей лога.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Token возвращает slog.Attr с укороченным токеном сессии.
// Полный токен в лог не попадает.
func Token(token string) slog.Attr {
	const visible = 6
	if len(token) <= visible {
		return slog.String("session", "***")
	}
	return slog.String("session", token[:visible]+"***")
}
