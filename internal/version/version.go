// Package version отдаёт сборочную информацию, зашиваемую через -ldflags.
package version

import "fmt"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Info возвращает версию, коммит и дату сборки.
func Info() (v, c, d string) { return version, commit, date }

// String возвращает сборочную информацию одной строкой для логов
// и health-ответов.
func String() string {
	return fmt.Sprintf("backoffice version=%s commit=%s date=%s", version, commit, date)
}
