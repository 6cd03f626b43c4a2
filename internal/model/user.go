package model

import "strings"

// User — пользователь из внешнего сервиса аутентификации.
// Кроме идентификатора и имени для отображения система о нем ничего не знает.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// DisplayName возвращает имя для приветствия: полное имя или часть email до @
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if i := strings.IndexByte(u.Email, '@'); i > 0 {
		return u.Email[:i]
	}
	return u.Email
}

// Session — сессия пользователя, выданная сервисом аутентификации
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}
