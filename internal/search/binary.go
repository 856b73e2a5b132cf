package search

import "bytes"

// binaryPrefixLimit bounds how much of a buffer-mode file is inspected
// for a NUL byte before giving up and treating it as text. Matches the
// "first few KB" convention common to grep-family binary detection.
const binaryPrefixLimit = 8192

// looksBinary reports whether data's bounded prefix contains a NUL byte,
// the same heuristic grep/ripgrep use: text files essentially never
// contain a NUL, so one is treated as proof of binary content.
func looksBinary(data []byte) bool {
	n := len(data)
	if n > binaryPrefixLimit {
		n = binaryPrefixLimit
	}
	return bytes.IndexByte(data[:n], 0) >= 0
}
