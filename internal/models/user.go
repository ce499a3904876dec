// internal/models/user.go
package models

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultPhoneRegion = "BR"

// Credentials is the body of POST /login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

func (c Credentials) Validate() error {
	if err := required("email", c.Email, "Informe o email."); err != nil {
		return err
	}
	return required("senha", c.Password, "Informe a senha.")
}

// User is the body of POST /usuarios. Password is write-only.
type User struct {
	Name      string `json:"nome"`
	Email     string `json:"email"`
	Gender    string `json:"genero"`
	BirthDate string `json:"data_nascimento"`
	Phone     string `json:"celular"`
	Password  string `json:"senha,omitempty"`
}

func (u User) Normalize() User {
	return User{
		Name:      strings.TrimSpace(u.Name),
		Email:     strings.TrimSpace(u.Email),
		Gender:    strings.ToUpper(strings.TrimSpace(u.Gender)),
		BirthDate: strings.TrimSpace(u.BirthDate),
		Phone:     NormalizePhone(u.Phone),
		Password:  u.Password,
	}
}

func (u User) Validate() error {
	checks := []error{
		required("nome", u.Name, "Informe seu nome completo."),
		required("email", u.Email, "Informe o email."),
		required("genero", u.Gender, "Selecione seu gênero."),
		required("data_nascimento", u.BirthDate, "Informe sua data de nascimento."),
		required("celular", u.Phone, "Informe seu número de celular."),
		required("senha", u.Password, "Informe uma senha."),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	switch u.Gender {
	case "M", "F":
	default:
		return ValidationError{Field: "genero", Message: "Selecione seu gênero."}
	}
	return nil
}

// NormalizePhone formats a parseable phone number as E.164, assuming Brazil
// when no country code is given. Anything else is returned trimmed.
func NormalizePhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	num, err := phonenumbers.Parse(trimmed, defaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return trimmed
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
