package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex doc_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

// initializeSID initializes the shortid generator once
func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortID returns a url-safe short identifier used for client
// portal access tokens. Not guaranteed unique across restarts on its own;
// callers persisting it must enforce uniqueness at the storage layer.
func GenerateShortID() string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	return strings.ReplaceAll(id, "-", "")
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_DOCUMENT           = "doc"
	UUID_PREFIX_DOCUMENT_LINE_ITEM = "doc_line"
	UUID_PREFIX_LISTING            = "lst"
	UUID_PREFIX_CLIENT             = "client"
	UUID_PREFIX_USER               = "user"
)
