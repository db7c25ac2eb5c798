package main

import "canvasChat/cmd/app"

func main() {
	app.GetApp().LetsGo()
}
