package dto

type PreferenceToggleRequest struct {
	Value *bool `json:"value" validate:"required"`
}
