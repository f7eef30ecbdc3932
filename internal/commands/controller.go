// Package commands contains the CLI commands for the application
package commands

type Flags struct {
	Config string
	Watch  bool
}

type Controller struct {
	Flags *Flags
}
