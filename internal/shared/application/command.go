package application

import "context"

// Command is a state-changing request. Each command names itself for
// logging and event metadata.
type Command interface {
	CommandName() string
}

// CommandHandler executes one command type.
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, cmd C) error
}
