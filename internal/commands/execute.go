package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Prob     func(ProbArgs) (Result, error)
	Collapse func() (Result, error)
	Reset    func() (Result, error)
	Help     func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeProb:
		if handlers.Prob == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Prob(*cmd.Prob)
	case TypeCollapse:
		if handlers.Collapse == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Collapse()
	case TypeReset:
		if handlers.Reset == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Reset()
	case TypeHelp:
		if handlers.Help == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Help()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missingHandler(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
