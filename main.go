// SPDX-License-Identifier: MPL-2.0

package main

import cmd "quiver-cli/cmd/quiver"

func main() {
	cmd.Execute()
}
