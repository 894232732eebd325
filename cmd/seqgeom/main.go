// cmd/seqgeom/main.go
package main

import (
	"seqgeom/internal/app"
	"seqgeom/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
