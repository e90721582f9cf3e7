package dto

import "time"

// SessionRequest conexión simulada del escáner.
type SessionRequest struct {
	Operator string `json:"operator" validate:"required,max=60"`
	DeviceID string `json:"device_id" validate:"required,max=80"`
	Bodega   string `json:"bodega" validate:"omitempty,max=120"`
}

// SessionResponse token de dispositivo.
type SessionResponse struct {
	Token     string    `json:"token"`
	Operator  string    `json:"operator"`
	DeviceID  string    `json:"device_id"`
	Bodega    string    `json:"bodega"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SettingsRequest body de PUT /api/settings.
type SettingsRequest struct {
	Bodega    string   `json:"bodega"`
	Currency  string   `json:"currency"`
	Operators []string `json:"operators"`
	Columns   []string `json:"columns"`
}
