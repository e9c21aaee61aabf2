package main

import "github.com/dbmapper/dbmapper/cmd/dbmapper"

func main() { dbmapper.Execute() }
