package extraction

import "github.com/goliatone/go-leadform/pkg/model"

// Payload is the request body expected by the extraction service. Every key
// is always present, empty strings included.
type Payload struct {
	Company     string `json:"empresa"`
	Name        string `json:"nome"`
	Email       string `json:"email"`
	Phone       string `json:"telefone"`
	Role        string `json:"cargo"`
	Sector      string `json:"setor"`
	Description string `json:"descricao_empresa"`
	Problems    string `json:"dores"`
	Innovation  string `json:"areas"`
}

// PayloadFromForm maps form data onto the service keys. Values are sent as
// typed, without trimming.
func PayloadFromForm(data model.FormData) Payload {
	return Payload{
		Company:     data.Company,
		Name:        data.Name,
		Email:       data.Email,
		Phone:       data.Phone,
		Role:        data.Role,
		Sector:      data.Sector,
		Description: data.Description,
		Problems:    data.Problems,
		Innovation:  data.Innovation,
	}
}
