package main

import "github.com/harborhealth/cdcdemo/cmd"

func main() {
	cmd.Execute()
}
