// cmd/seqgeom-describe/main.go
package main

import (
	"seqgeom/internal/appshell"
	"seqgeom/internal/describeapp"
)

func main() { appshell.Main(describeapp.RunContext) }
