package respond

import (
	"regexp"
)

var (
	// user:password@ inside DSNs
	dbPasswordPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)
	// password=... key/value DSN form
	kvPasswordPattern = regexp.MustCompile(`(?i)(password=)\S+`)
	bearerPattern     = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9\-_=]+\.[A-Za-z0-9\-_=]+\.?[A-Za-z0-9\-_.+/=]*`)
	bcryptHashPattern = regexp.MustCompile(`\$2[aby]?\$\d{2}\$[./A-Za-z0-9]{53}`)
)

// SanitizeError returns the error message with credentials, tokens and
// password hashes masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "${1}****")
	msg = bearerPattern.ReplaceAllString(msg, "${1}****")
	msg = bcryptHashPattern.ReplaceAllString(msg, "$$2*$$****")
	return msg
}
