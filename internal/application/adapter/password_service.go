package adapter

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)

	// VerifyPassword returns an error when password does not match the hash.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength rejects passwords below the minimum policy.
	ValidatePasswordStrength(password string) error
}
