package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/serviguard/roster/backend/internal/domain"
)

var commonFirstNames = []string{
	"José", "Luis", "Carlos", "Juan", "Jorge", "Pedro", "Manuel", "Víctor",
	"María", "Ana", "Carmen", "Rosa", "Patricia", "Claudia", "Daniela",
	"Miguel", "Héctor", "Ricardo", "Francisco", "Andrés",
}

var commonSurnames = []string{
	"González", "Muñoz", "Rojas", "Díaz", "Pérez", "Soto", "Contreras",
	"Silva", "Martínez", "Sepúlveda", "Morales", "Rodríguez", "López",
	"Fuentes", "Hernández", "Torres", "Araya", "Flores", "Espinoza", "Valenzuela",
}

func GenerateRandomGuardName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	paternal := commonSurnames[rand.Intn(len(commonSurnames))]
	maternal := commonSurnames[rand.Intn(len(commonSurnames))]
	return fmt.Sprintf("%s %s %s", first, paternal, maternal)
}

var digits = "0123456789"

// GenerateRandomDocumentNumber produces a national-id-looking string for
// seed data, digits plus a check character.
func GenerateRandomDocumentNumber() string {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		sb.WriteByte(digits[rand.Intn(len(digits))])
	}
	sb.WriteByte('-')
	check := "0123456789K"
	sb.WriteByte(check[rand.Intn(len(check))])
	return sb.String()
}

var guardStatuses = []domain.GuardStatus{
	domain.GuardStatusPostulado,
	domain.GuardStatusSeleccionado,
	domain.GuardStatusContratado,
	domain.GuardStatusDesvinculado,
}

func GenerateRandomGuardStatus() domain.GuardStatus {
	return guardStatuses[rand.Intn(len(guardStatuses))]
}

func GenerateRandomGuard(emailDomainName string) *domain.Guard {
	fullName := GenerateRandomGuardName()
	localPart := strings.ToLower(strings.ReplaceAll(stripAccents(fullName), " ", "."))

	return &domain.Guard{
		FullName:       fullName,
		DocumentNumber: GenerateRandomDocumentNumber(),
		Email:          localPart + "@" + emailDomainName,
		Phone:          fmt.Sprintf("+56 9 %08d", rand.Intn(100000000)),
		Status:         GenerateRandomGuardStatus(),
		Blacklisted:    rand.Intn(20) == 0,
	}
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ñ", "N",
)

func stripAccents(s string) string {
	return accentReplacer.Replace(s)
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}
