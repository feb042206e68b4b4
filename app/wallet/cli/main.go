package main

import "github.com/rhizanet/rhiza/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
