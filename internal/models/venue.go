// internal/models/venue.go
package models

import (
	"strconv"
	"strings"
)

type Venue struct {
	ID                     int64  `json:"id_local"`
	Name                   string `json:"nome"`
	Capacity               int64  `json:"capacidade"`
	AvailableForScheduling bool   `json:"disponivel_para_agendamento"`
}

// VenueInput is the body of POST /locais.
type VenueInput struct {
	Name                   string `json:"nome"`
	Capacity               int64  `json:"capacidade"`
	AvailableForScheduling bool   `json:"disponivel_para_agendamento"`
}

// VenueForm holds the raw form values before coercion.
type VenueForm struct {
	Name                   string
	Capacity               string
	AvailableForScheduling bool
}

func (in VenueInput) Normalize() VenueInput {
	in.Name = strings.TrimSpace(in.Name)
	return in
}

func (in VenueInput) Validate() error {
	if err := required("nome", in.Name, "Informe o nome do local."); err != nil {
		return err
	}
	if in.Capacity < 0 {
		return ValidationError{Field: "capacidade", Message: "A capacidade deve ser um número inteiro não negativo."}
	}
	return nil
}

// Input coerces the raw form into a validated VenueInput.
func (f VenueForm) Input() (VenueInput, error) {
	name := strings.TrimSpace(f.Name)
	if err := required("nome", name, "Informe o nome do local."); err != nil {
		return VenueInput{}, err
	}
	rawCapacity := strings.TrimSpace(f.Capacity)
	if err := required("capacidade", rawCapacity, "Informe a capacidade do local."); err != nil {
		return VenueInput{}, err
	}
	capacity, err := strconv.ParseInt(rawCapacity, 10, 64)
	if err != nil || capacity < 0 {
		return VenueInput{}, ValidationError{Field: "capacidade", Message: "A capacidade deve ser um número inteiro não negativo."}
	}
	in := VenueInput{
		Name:                   name,
		Capacity:               capacity,
		AvailableForScheduling: f.AvailableForScheduling,
	}
	return in, in.Validate()
}
