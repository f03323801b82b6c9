// Command gen generates synthetic memory-access traces.
package main

import "github.com/sarchlab/memtrace/gen/cmd"

func main() {
	cmd.Execute()
}
