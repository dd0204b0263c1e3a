package main

import "github.com/hyuga-t/todo-front/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustListenAndServeHTTP()
}
