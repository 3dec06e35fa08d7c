// models содержит доменные сущности feed-сервиса.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Account — учётная запись пользователя.
//
// Особенности:
//   - Email и Phone уникальны среди всех аккаунтов;
//   - PasswordHash — bcrypt-хэш, открытый пароль никогда не хранится;
//   - Preferences — набор категорий для ленты (порядок не важен, без дублей).
type Account struct {
	ID           uuid.UUID  `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	DOB          time.Time  `json:"dob"`
	PasswordHash string     `json:"-"`
	Preferences  []Category `json:"preferences"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// RoleUser — роль, которая попадает в claim токена.
const RoleUser = "user"
