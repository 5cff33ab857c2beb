package locate

import (
	"bufio"
	"os"
	"strings"
)

// settingsFullPath scans a client settings file for a FullPath
// override. The file is line-oriented plain text; only a line whose key
// is FullPath (case-insensitive) is interpreted, and its trimmed value
// is taken as the redirected data directory. Empty values and
// unreadable files yield no override.
func settingsFullPath(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(key), "FullPath") {
			continue
		}
		if v := strings.TrimSpace(value); v != "" {
			return v
		}
	}
	return ""
}
