package main

import (
	"weddingChat/cmd/app"
)

func main() {
	app.GetApp().LetsGo()
}
