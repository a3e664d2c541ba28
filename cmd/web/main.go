package main

import "bloodlink_backend/internal/app"

func main() {
	app.Run()
}
