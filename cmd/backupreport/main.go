package main

import (
	_ "time/tzdata"

	"github.com/vietddude/backupreport/internal/cli"
)

func main() {
	cli.Execute()
}
