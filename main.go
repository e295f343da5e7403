package main

import (
	"embed"

	cmd "github.com/kreyling/cragg/cmd/cragg"
	"github.com/kreyling/cragg/internal/assets"
)

//go:embed data/templates
var vfs embed.FS

func main() {
	assets.UpdateData(&vfs)
	cmd.Execute()
}
