// Command placementwiz creates job, internship and exam postings through a
// step-by-step wizard and manages their approval queue.
package main

import "placementwiz/internal/cli"

func main() {
	cli.Execute()
}
