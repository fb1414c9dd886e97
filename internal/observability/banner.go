package observability

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	colorReset    = "\033[0m"
	colorNeonCyan = "\033[96m"
)

func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}
	return w
}

// PrintBanner renders the startup banner centered on the terminal.
func PrintBanner() {
	banner := `
   ____ _________  ______ _    ____ _      __
  / __ '/ _ \/ _ \/ __/ /' \  / __/' | /| / /
 / /_/ /  __/ /_/ / _// / /_/ / _/ / /|/ |/ /
 \__, /\___/\____/_/ /_/\____/_/  /_/   |__/
/____/

   >> NATURAL LANGUAGE TO GIS WORKFLOWS <<
`

	width := termWidth()
	lines := strings.Split(banner, "\n")

	for _, l := range lines {
		padding := (width - len(l)) / 2
		if padding < 0 {
			padding = 0
		}
		fmt.Printf("%s%s%s\n", strings.Repeat(" ", padding), colorNeonCyan+l, colorReset)
	}
}
