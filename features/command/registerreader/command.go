package registerreader

const (
	commandType = "RegisterReader"
)

// Command represents the intent to register a new reader.
type Command struct {
	FirstName string
	LastName  string
}

// CommandType returns the type identifier for this command.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(firstName string, lastName string) Command {
	return Command{
		FirstName: firstName,
		LastName:  lastName,
	}
}
