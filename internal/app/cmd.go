package app

// Command is the mode the process starts in.
type Command string

const (
	// CommandServe starts the API server.
	CommandServe Command = "serve"
	// CommandWorker starts the background news publisher.
	CommandWorker Command = "worker"
	// CommandMigrate applies the database migrations.
	CommandMigrate Command = "migrate"
	// CommandHealthcheck probes a running server. Used by container health checks.
	CommandHealthcheck Command = "healthcheck"
)

// ParseCommand reads the sub-command from the arguments.
// No argument or an unknown one means CommandServe.
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}

	switch args[0] {
	case "worker":
		return CommandWorker
	case "serve":
		return CommandServe
	case "migrate":
		return CommandMigrate
	case "healthcheck":
		return CommandHealthcheck
	default:
		return CommandServe
	}
}
