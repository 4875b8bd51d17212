package main

import (
	"dotplot/internal/app"
	"dotplot/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
