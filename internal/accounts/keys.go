package accounts

// Storage key layout. Per-account records are keyed by email; the session
// pointer, last-authenticated pointer, and biometrics flag are singletons.
const (
	keyPrefixUser        = "user_"
	keyPrefixCredentials = "credentials_"

	keySessionUser       = "user"
	keyLastUser          = "last_user"
	keyBiometricsEnabled = "biometrics_enabled"
)

func userKey(email string) string {
	return keyPrefixUser + email
}

func credentialsKey(email string) string {
	return keyPrefixCredentials + email
}
