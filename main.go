package main

import (
	"github.com/shuaizuo666/Task-System/app"
)

//	@title       Task-System API
//	@version     1.0
//	@description Multi-user task tracking backend with JWT authentication.

func main() {
	// setup and run app
	err := app.SetupAndRunApp()
	if err != nil {
		panic(err)
	}
}
