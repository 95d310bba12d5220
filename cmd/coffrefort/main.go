package main

import "github.com/Azizsaidi66/CoffreFort/cmd/coffrefort/cmd"

func main() {
	cmd.Execute()
}
