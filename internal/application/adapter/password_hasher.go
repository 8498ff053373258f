package adapter

// PasswordHasher turns plain passwords into stored hashes and back into a yes/no answer.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Matches(hash, plain string) bool
	// CheckPolicy reports why plain is not acceptable as a new password.
	CheckPolicy(plain string) error
}
