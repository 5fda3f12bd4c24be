package catalog

import "strings"

// DefaultChunkSize is the maximum number of characters per quotation.
const DefaultChunkSize = 4000

// chunkText splits text on line boundaries into chunks whose line lengths
// (newlines excluded) add up to at most size. A single line longer than
// size becomes a chunk of its own.
func chunkText(text string, size int) []string {
	var (
		chunks  []string
		current strings.Builder
		n       int
	)

	for _, line := range strings.Split(text, "\n") {
		l := len([]rune(line))
		if n+l > size && current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			n = 0
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
		n += l
	}

	if strings.TrimSpace(current.String()) != "" {
		chunks = append(chunks, current.String())
	}
	return chunks
}
