package main

import "insurancelk_backend/internal/app"

func main() {
	app.Run()
}
