package dto

// CreateClientRequest alta de cliente en el directorio.
type CreateClientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	PAN      string `json:"pan"`
	Approved bool   `json:"approved"`
}

// ClientResponse cliente del directorio.
type ClientResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	PAN      string `json:"pan"`
	Approved bool   `json:"approved"`
	Status   string `json:"status"`
}

// CreateVendorRequest alta de vendedor en el directorio.
type CreateVendorRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	PAN   string `json:"pan"`
}

// VendorResponse vendedor del directorio.
type VendorResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	PAN    string `json:"pan"`
	Status string `json:"status"`
}
