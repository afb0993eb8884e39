package desktop

import (
	"strings"

	"github.com/google/uuid"
)

// singleInstanceNamespace scopes the name-based IDs of single-instance locks
var singleInstanceNamespace = uuid.MustParse("6f1d3c52-9a4e-4b8e-a0c1-5d2f7e8b9c3a")

// UniqueID derives the single-instance lock ID from the app name, so every
// build of the same app shares one lock and different apps never collide.
func UniqueID(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	return "pake." + uuid.NewSHA1(singleInstanceNamespace, []byte(key)).String()
}
