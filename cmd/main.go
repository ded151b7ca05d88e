// cmd/main.go
package main

import (
	"voting-api/app"
)

// @title           Voting API
// @version         1.0
// @description     Voter session and ballot casting service for an online election.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8000
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
