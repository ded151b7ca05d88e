package model

import "github.com/golang-jwt/jwt/v5"

type AppClaims struct {
	IdentityID int  `json:"identity_id"`
	IsAdmin    bool `json:"admin"`
	jwt.RegisteredClaims
}
