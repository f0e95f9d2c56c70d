package main

import (
	"github.com/communitylot/lotkeeper/cmd/lotctl/command"
)

func main() {
	command.Execute()
}
