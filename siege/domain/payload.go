package domain

import "strconv"

const (
	PayloadName     = "ibaby"
	PayloadPassword = "password"
	emailDomain     = "@gmail.com"
)

// Payload é o corpo enviado tanto no register quanto no login.
// É montado por tarefa e descartado em seguida.
type Payload struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// NewPayload monta o payload da tarefa i. Só o email varia com o índice.
func NewPayload(i int) Payload {
	return Payload{
		Name:            PayloadName,
		Email:           strconv.Itoa(i) + emailDomain,
		Password:        PayloadPassword,
		PasswordConfirm: PayloadPassword,
	}
}
