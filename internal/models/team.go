// internal/models/team.go
package models

import "strings"

const (
	DefaultUniformColor    = "#10b981"
	DefaultResponsibleName = "Não definido"
)

type Team struct {
	ID              int64  `json:"id_time"`
	Name            string `json:"nome_time"`
	ResponsibleName string `json:"nome_responsavel"`
	UniformColor    string `json:"cor_uniforme,omitempty"`
}

// TeamInput is the body of POST /times.
type TeamInput struct {
	Name            string `json:"nome_time"`
	ResponsibleName string `json:"nome_responsavel"`
	UniformColor    string `json:"cor_uniforme"`
}

// Normalize trims every field and fills the defaults the upstream expects.
func (in TeamInput) Normalize() TeamInput {
	out := TeamInput{
		Name:            strings.TrimSpace(in.Name),
		ResponsibleName: strings.TrimSpace(in.ResponsibleName),
		UniformColor:    strings.TrimSpace(in.UniformColor),
	}
	if out.ResponsibleName == "" {
		out.ResponsibleName = DefaultResponsibleName
	}
	return out
}

func (in TeamInput) Validate() error {
	if err := required("nome_time", in.Name, "Informe o nome do time."); err != nil {
		return err
	}
	if err := required("cor_uniforme", in.UniformColor, "Informe a cor do uniforme."); err != nil {
		return err
	}
	if !IsHexColor(in.UniformColor) {
		return ValidationError{Field: "cor_uniforme", Message: "A cor do uniforme deve estar no formato #RRGGBB."}
	}
	return nil
}
