// Package service defines the interfaces for domain services.
// These are contracts for capabilities the application layer needs
// but whose implementations live in the infrastructure layer.
package service

// PasswordHasher provides password hashing and verification.
type PasswordHasher interface {
	// Hash derives a storable hash from a plaintext password.
	Hash(password string) (string, error)

	// Check reports whether the plaintext password matches the stored hash.
	Check(hashedPassword, password string) bool

	// ValidateStrength rejects passwords that do not meet the policy.
	ValidateStrength(password string) error
}
