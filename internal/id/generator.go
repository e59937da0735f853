package id

import (
	"time"

	fid "github.com/amterp/flexid"
)

var generator *fid.Generator

func init() {
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	config := fid.NewConfig().
		WithEpoch(epoch).
		WithTickSize(10 * time.Millisecond).
		WithNumRandomChars(3)

	generator = fid.MustNewGenerator(config)
}

// Generate returns a new unique card ID.
func Generate() string {
	return generator.MustGenerate()
}

// UploadToken returns a uniqueness token for blob paths. Tokens are
// time-ordered with a random suffix, so rapid repeated uploads for the
// same card cannot collide the way bare timestamps can.
func UploadToken() string {
	return generator.MustGenerate()
}
