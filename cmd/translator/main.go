package main

import (
	"os"

	"github.com/sourcehindi/hindic/cmd/translator/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
