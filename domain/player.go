// Package domain holds the player aggregate and its invariants.
package domain

import (
	"errors"
	"regexp"

	"github.com/google/uuid"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordStrengthScore = 3

	usernamePattern   = `^[a-zA-Z0-9_]+$` // Alphanumeric with underscores
	minUsernameLength = 3
	maxUsernameLength = 20

	bcryptCost = 14
)

var usernameRegex = regexp.MustCompile(usernamePattern)

// Validation errors for player creation.
var (
	ErrUsernameTooShort = errors.New("username too short")
	ErrUsernameTooLong  = errors.New("username too long")
	ErrUsernameFormat   = errors.New("invalid username format")
	ErrWeakPassword     = errors.New("weak password")
)

// Player is a registered maze runner and their solve record. BestSteps is
// zero until the first solved maze.
type Player struct {
	ID           uuid.UUID `bson:"_id"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"passwordHash"`
	Solves       int       `bson:"solves"`
	BestSteps    int       `bson:"bestSteps"`
}

// PlayerConfig holds the parameters for creating a Player from plain
// credentials.
type PlayerConfig struct {
	ID            uuid.UUID
	Username      string
	PlainPassword string
}

// NewPlayer creates a Player after validating the username and password
// strength, storing only the bcrypt hash.
func NewPlayer(config PlayerConfig) (*Player, error) {
	if err := validateUsername(config.Username); err != nil {
		return nil, err
	}

	if err := validatePassword(config.PlainPassword); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(config.PlainPassword)
	if err != nil {
		return nil, err
	}

	return &Player{
		ID:           config.ID,
		Username:     config.Username,
		PasswordHash: passwordHash,
	}, nil
}

// VerifyPassword verifies the given password against the stored hash.
func (p *Player) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password))
	return err == nil
}

// RecordSolve updates the solve counters with a finished run's step count.
func (p *Player) RecordSolve(steps int) {
	p.Solves++
	if p.BestSteps == 0 || steps < p.BestSteps {
		p.BestSteps = steps
	}
}

func validateUsername(username string) error {
	if len(username) < minUsernameLength {
		return ErrUsernameTooShort
	}
	if len(username) > maxUsernameLength {
		return ErrUsernameTooLong
	}
	if !usernameRegex.MatchString(username) {
		return ErrUsernameFormat
	}
	return nil
}

// validatePassword checks the strength of the password.
func validatePassword(password string) error {
	result := zxcvbn.PasswordStrength(password, nil)
	if result.Score < minPasswordStrengthScore {
		return ErrWeakPassword
	}
	return nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}
