package theme

import (
	"embed"
	"io/fs"
)

//go:embed templates
var templates embed.FS

func init() {
	for _, name := range []string{"default", "terminal"} {
		sub, err := fs.Sub(templates, "templates/"+name)
		if err != nil {
			// Embedded directories are fixed at compile time; a failure here
			// means the binary itself is broken.
			panic(err)
		}
		Register(name, sub)
	}
}
