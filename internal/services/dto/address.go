package dto

type CreateAddressRequest struct {
	HouseNumber string `json:"house_number" validate:"required"`
	Street      string `json:"street" validate:"required"`
	City        string `json:"city" validate:"required"`
	State       string `json:"state"`
	Postcode    string `json:"postcode" validate:"required"`
	IsDefault   bool   `json:"is_default"`
}
