package main

import "github.com/policyengine/sb60calc/cmd"

func main() {
	cmd.Execute()
}
