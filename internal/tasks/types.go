package tasks

// Definition captures a single task entry from static configuration.
type Definition struct {
	Name             string            `mapstructure:"name" yaml:"name"`
	Needs            []string          `mapstructure:"needs" yaml:"needs"`
	Command          []string          `mapstructure:"command" yaml:"command"`
	WorkingDirectory string            `mapstructure:"dir" yaml:"dir"`
	Environment      map[string]string `mapstructure:"env" yaml:"env"`
}

// Task describes a named unit of work with prerequisites and an optional command.
//
// A task without a command is a grouping node: it succeeds once all of its
// prerequisites have succeeded.
type Task struct {
	Name             string
	Prerequisites    []string
	Command          []string
	WorkingDirectory string
	Environment      map[string]string
}

// HasCommand reports whether the task carries an external command to execute.
func (task Task) HasCommand() bool {
	return len(task.Command) > 0
}
