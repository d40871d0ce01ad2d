package core

// Logger описывает приемник сообщений команды.
type Logger interface {
	Info(msg string, args ...any)
	Success(msg string, args ...any)
	Warning(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
	Step(msg string, args ...any)
}

// FileSystem описывает файловые операции относительно корня проекта.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	MkdirAll(path string) error
	Exists(path string) (bool, error)
	Remove(path string) error
}

// CommandContext передается во все исполнители; они его не изменяют.
type CommandContext struct {
	ProjectRoot string
	Logger      Logger
	Verbose     bool
	FS          FileSystem
	Args        []string
}

// Response описывает унифицированный результат выполнения команды.
type Response struct {
	Status    string      `json:"status"`
	Data      interface{} `json:"data,omitempty"`
	ErrorCode string      `json:"error_code,omitempty"`
	Message   string      `json:"message,omitempty"`
}

// OK оборачивает данные в успешный ответ.
func OK(data interface{}) Response {
	return Response{Status: "ok", Data: data}
}

// Failed строит ответ из ошибки исполнителя.
func Failed(err error) Response {
	return Response{Status: "error", ErrorCode: CodeOf(err), Message: MessageOf(err)}
}
