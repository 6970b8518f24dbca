package models

import "time"

// User is a landing-page lead. The email is the identity and is stored
// normalized to lower case; uniqueness is case-insensitive.
type User struct { //nolint:govet // fieldalignment: readability over optimization
	ID              int64     `db:"id" json:"id"`
	Nombre          string    `db:"nombre" json:"nombre"`
	Email           string    `db:"email" json:"email"`
	FechaDeRegistro time.Time `db:"fecha_de_registro" json:"fechaDeRegistro"`
	IsVerified      bool      `db:"is_verified" json:"isVerified"`
}
