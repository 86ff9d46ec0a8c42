package event

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

func cacheKeyEventDetails(id string) string {
	return fmt.Sprintf("event:%s", id)
}

// Deterministic key over the filter parameters.
func cacheKeyList(f ListFilter) string {
	after := ""
	if f.StartAfter != nil {
		after = f.StartAfter.UTC().Format(time.RFC3339)
	}
	before := ""
	if f.StartBefore != nil {
		before = f.StartBefore.UTC().Format(time.RFC3339)
	}

	raw := fmt.Sprintf("loc=%s|cat=%s|q=%s|feat=%t|ps=%d|after=%s|before=%s",
		f.Location, f.Category, f.Search, f.Featured, f.PageSize, after, before)

	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("events:list:%s", hex.EncodeToString(hash[:]))
}
