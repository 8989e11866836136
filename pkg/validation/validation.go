package validation

import (
	"github.com/go-playground/validator/v10"
)

// ZipRule accepts exactly five ASCII digits
const ZipRule = "len=5,number"

var validate = validator.New()

// IsValidZip reports whether zip is a five digit US zip code. No trimming or other
// normalization is applied.
func IsValidZip(zip string) bool {
	return validate.Var(zip, ZipRule) == nil
}

// InvalidZips returns the entries of zips that fail IsValidZip
func InvalidZips(zips []string) []string {
	var invalid []string
	for _, zip := range zips {
		if !IsValidZip(zip) {
			invalid = append(invalid, zip)
		}
	}
	return invalid
}
