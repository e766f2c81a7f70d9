// Package models содержит доменные структуры сервиса аренды: пользователя,
// вещь, сессию и событие смены статуса аренды, а также типы для приёма
// данных из JSON-запросов.
package models

import "github.com/google/uuid"

// User представляет зарегистрированного пользователя.
// Создаётся при регистрации и больше не меняется.
type User struct {
	ID           uuid.UUID // Уникальный идентификатор пользователя
	UserName     string    // Имя пользователя (уникальное)
	PasswordHash string    // bcrypt-хэш пароля
}

// Credentials — тело запросов /signup и /login.
type Credentials struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}
