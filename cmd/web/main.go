package main

import "voxshop_backend/internal/app"

func main() {
	app.Run()
}
