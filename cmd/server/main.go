package main

import "todoapp/internal/app"

func main() {
	app.Run()
}
