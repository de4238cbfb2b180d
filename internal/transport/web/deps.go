package web

import "github.com/rozennrd/dave-backend/internal/domain"

type Repos struct {
	Users  domain.UsersRepo
	Plants domain.PlantsRepo
}

type AuthDeps struct {
	Hasher    domain.PasswordHasher
	Tokens    domain.TokenManager
	Blacklist domain.TokenBlacklist
}
