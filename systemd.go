package main

import (
	_ "embed"
	"os"
	"text/template"
)

//go:embed tombola.service
var tombolaServiceEmbed string

type TombolaServiceParams struct {
	BinaryPath string
	User       string
}

func SystemdServiceFile() {
	tmpl := template.New("tombola.service")
	tmpl, err := tmpl.Parse(tombolaServiceEmbed)
	if err != nil {
		panic(err)
	}

	path, err := os.Executable()
	if err != nil {
		panic(err)
	}

	params := TombolaServiceParams{
		BinaryPath: path,
		User:       "tombola",
	}

	err = tmpl.Execute(os.Stdout, params)
	if err != nil {
		panic(err)
	}
}
