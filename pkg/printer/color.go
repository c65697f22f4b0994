package printer

import (
	"fmt"

	"github.com/fatih/color"
)

// palette holds the formatters for each kind of token in text output.
type palette struct {
	role   func(a ...any) string
	name   func(a ...any) string
	id     func(a ...any) string
	flag   func(a ...any) string
	hidden func(a ...any) string
}

func newPalette(enabled bool) palette {
	if !enabled {
		return palette{role: fmt.Sprint, name: fmt.Sprint, id: fmt.Sprint, flag: fmt.Sprint, hidden: fmt.Sprint}
	}
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintFunc()
	}
	return palette{
		role:   mk(color.FgCyan, color.Bold),
		name:   mk(color.FgGreen),
		id:     mk(color.FgHiBlack),
		flag:   mk(color.FgYellow),
		hidden: mk(color.Faint),
	}
}
