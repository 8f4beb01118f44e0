package domain

// LoggedInKey is the durable client storage key holding the gate flag.
const LoggedInKey = "isLoggedIn"

// The gate compares a shared secret on every check. It keeps casual visitors out
// and nothing more: deep links skip it, and the secret ships in configuration
// readable by anyone operating the service.
const DefaultPasscode = "070925"
