package filemanager_test

import (
	"os"
	"strings"
)

func joinList(elems ...string) string {
	return strings.Join(elems, string(os.PathListSeparator))
}
