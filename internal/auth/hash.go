package auth

import "strconv"

// HashPassword folds the password into a short base-36 token with a running
// 31-multiplier transform over its characters. It is deterministic and NOT
// cryptographic: collisions are acceptable and the token is only ever
// compared for equality against a stored token. Any deployment that needs
// real password security must replace this with a vetted KDF.
func HashPassword(password string) string {
	var h int32
	for _, char := range password {
		h = h*31 + char
	}

	value := int64(h)
	if value < 0 {
		value = -value
	}
	return strconv.FormatInt(value, 36)
}

// ComparePasswords checks a plain password against a stored token.
func ComparePasswords(hashed string, plain string) bool {
	return hashed == HashPassword(plain)
}
