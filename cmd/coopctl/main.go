// Command coopctl drives the cooperative's maintenance functions from a
// terminal or a CI job.
package main

import "os"

func main() {
	os.Exit(execute())
}
