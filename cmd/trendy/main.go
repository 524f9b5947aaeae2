package main

import (
	"trendy/cmd/handlers"
	"trendy/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
