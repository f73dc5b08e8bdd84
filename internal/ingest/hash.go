package ingest

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// TitleHash is the stable cross-provider identity for a title: the
// lowercase hex MD5 digest of the uppercased title text. Two providers
// listing the same movie under identical title text converge on one hash;
// any difference in the text (punctuation included) is a different movie.
func TitleHash(title string) string {
	sum := md5.Sum([]byte(strings.ToUpper(title)))
	return hex.EncodeToString(sum[:])
}
