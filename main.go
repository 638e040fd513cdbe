package main

import "ride-tracker-backend/cmd"

func main() {
	cmd.Run()
}
