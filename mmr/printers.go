package mmr

import (
	"fmt"
	"strings"
)

// debug utilities

func hashesString(path []Hash, sep string) string {
	var spath []string

	for _, it := range path {
		spath = append(spath, it.Hex())
	}
	return strings.Join(spath, sep)
}

func hashPathsString(paths [][]Hash, sep string) string {

	spaths := make([]string, 0, len(paths))

	for _, path := range paths {
		spaths = append(spaths, fmt.Sprintf("[%s]", hashesString(path, sep)))
	}
	return strings.Join(spaths, sep)
}
