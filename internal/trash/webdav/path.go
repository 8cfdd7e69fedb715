package webdav

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/babarot/nctrash/internal/trash/core"
)

const (
	trashSegment   = "trash/"
	restoreSegment = "restore/"
)

// TrashPath returns the trash collection path of user
func TrashPath(user string) string {
	return "/remote.php/dav/trashbin/" + url.PathEscape(user) + "/trash"
}

// RestoreDestination maps a trashed item's href to the Destination of its
// MOVE: the first "trash/" is replaced by "restore/", nothing else changes.
// Hrefs without that segment are rejected instead of being moved onto themselves.
func RestoreDestination(href string) (string, error) {
	if !strings.Contains(href, trashSegment) {
		return "", fmt.Errorf("%q: %w", href, core.ErrNoTrashSegment)
	}
	return strings.Replace(href, trashSegment, restoreSegment, 1), nil
}
