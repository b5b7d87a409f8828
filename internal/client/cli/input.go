package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/petcheck/internal/client/models"
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetSpecies prompts with the supported species and parses the answer.
// Both names and 1-based positions in the list are accepted.
func GetSpecies(reader *bufio.Reader, w io.Writer) (models.Species, error) {
	var b strings.Builder
	b.WriteString("Species:")
	for i, sp := range models.AllSpecies {
		fmt.Fprintf(&b, "\n  %d) %s %s", i+1, sp.Emoji(), sp)
	}

	answer, err := GetSimpleText(reader, b.String(), w)
	if err != nil {
		return "", err
	}

	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(models.AllSpecies) {
			return "", fmt.Errorf("no species number %d", n)
		}
		return models.AllSpecies[n-1], nil
	}
	return models.ParseSpecies(answer)
}
