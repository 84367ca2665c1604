package version

import "fmt"

// Заполняются через -ldflags "-X github.com/vladislavdragonenkov/bistro/internal/version.version=...".
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Info возвращает версию, коммит и дату сборки.
func Info() (v, c, d string) { return version, commit, date }

func GetVersion() string { return version }

func GetCommit() string { return commit }

func GetDate() string { return date }

// String форматирует сведения о сборке для логов.
func String() string {
	return fmt.Sprintf("bistro-cart version=%s commit=%s date=%s", version, commit, date)
}
