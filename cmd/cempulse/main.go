package main

import "github.com/cempulse/plant-ops/cmd/cempulse/cmd"

//	@title			CemPulse Plant Ops API
//	@version		1.0
//	@description	Role-gated process monitoring, advisory and approvals for a cement plant.
//	@BasePath		/
func main() {
	cmd.Execute()
}
