// Package api はトランスポート層で共有されるリクエスト/レスポンスDTOを定義します。
package api

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は成功メッセージのみの共通レスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse はログイン成功時のJWTトークンレスポンスです。
type TokenResponse struct {
	Token string `json:"token"`
}

// SignupRequest は新規ユーザー登録のリクエストDTOです。
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Region   string `json:"region"`
}

// LoginRequest はログインのリクエストDTOです。
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
