package dto

// CreateOfficeRequest represents the payload to create a consultation office
type CreateOfficeRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Address string `json:"address" validate:"required,max=255"`
	Number  string `json:"number" validate:"omitempty,max=20"`
}

// UpdateOfficeRequest represents the payload to update a consultation office
type UpdateOfficeRequest struct {
	Name    string  `json:"name" validate:"omitempty,min=2,max=100"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	Number  *string `json:"number" validate:"omitempty,max=20"`
}

// OfficeResponse represents a consultation office returned to clients
type OfficeResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Number  string `json:"number,omitempty"`
}
