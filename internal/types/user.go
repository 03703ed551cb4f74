package types

import "gorm.io/datatypes"

type UserResponse struct {
	ID                  uint           `json:"id"`
	Name                string         `json:"name"`
	Email               string         `json:"email"`
	Timezone            string         `json:"timezone"`
	OnboardingCompleted bool           `json:"onboarding_completed"`
	OnboardingData      datatypes.JSON `json:"onboarding_data,omitempty"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
