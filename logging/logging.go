package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	logging "github.com/ipfs/go-log/v2"
	"go.uber.org/zap"
)

var log = logging.Logger("docview-logger")

var DefaultLogLevel = logging.LevelError

var (
	m            sync.Mutex
	logLevelsStr string
)

// Logger returns the sugared logger for a subsystem. Subsystem names are
// expected to be "docview-<area>" so level globs can target them.
func Logger(system string) *zap.SugaredLogger {
	logger := logging.Logger(system)
	return &logger.SugaredLogger
}

// ApplyLevels parses a ";"-separated list of "pattern=level" (or a bare
// level applied to docview-*) and sets subsystem log levels accordingly.
func ApplyLevels(str string) {
	logLevelsStr = str
	setSubsystemLevels()
}

func ApplyLevelsFromEnv() {
	ApplyLevels(os.Getenv("DOCVIEW_LOG_LEVEL"))
}

func setSubsystemLevels() {
	m.Lock()
	defer m.Unlock()
	logLevels := make(map[string]string)
	if logLevelsStr != "" {
		for _, level := range strings.Split(logLevelsStr, ";") {
			parts := strings.Split(level, "=")
			var subsystemPattern glob.Glob
			var lvl string
			if len(parts) == 1 {
				subsystemPattern = glob.MustCompile("docview-*")
				lvl = parts[0]
			} else if len(parts) == 2 {
				var err error
				subsystemPattern, err = glob.Compile(parts[0])
				if err != nil {
					log.Errorf("failed to parse glob pattern '%s': %v", parts[0], err)
					continue
				}
				lvl = parts[1]
			}

			for _, subsystem := range logging.GetSubsystems() {
				if subsystemPattern.Match(subsystem) {
					logLevels[subsystem] = lvl
				}
			}
		}
	}

	if len(logLevels) == 0 {
		logging.SetAllLoggers(DefaultLogLevel)
		return
	}

	for subsystem, level := range logLevels {
		err := logging.SetLogLevel(subsystem, level)
		if err != nil {
			if err != logging.ErrNoSuchLogger {
				log.Errorf("subsystem %s has incorrect log level '%s': %v", subsystem, level, err)
			}
		}
	}
}
