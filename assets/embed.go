package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed roots.txt dictionary.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// RootsList returns the embedded default root-word candidates.
func RootsList() ([]string, error) {
	return readLines("roots.txt")
}

// DictionaryList returns the embedded default dictionary words.
func DictionaryList() ([]string, error) {
	return readLines("dictionary.txt")
}
