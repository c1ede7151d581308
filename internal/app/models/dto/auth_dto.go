package dto

// LoginRequest is the login payload. Students log in with their admission
// number as username.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"ADM2025001"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn"`
	RefreshExpiresIn int    `json:"refreshExpiresIn"`
	RoleType         string `json:"roleType"`
}

// RefreshTokenRequest requests a new token pair from a refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ChangePasswordRequest changes the authenticated user's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// CredentialResponse is returned once when a student credential is
// provisioned; the initial password is not retrievable afterwards.
type CredentialResponse struct {
	Username        string `json:"username"`
	InitialPassword string `json:"initialPassword"`
}
