package main

import "github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/cmd"

func main() {
	cmd.Execute()
}
