package notify

import (
	"sync"

	"github.com/saferide/saferide/pkg/logger"
)

// Notifier is the transient-notice sink the screens write to. Notices are
// fire-and-forget; implementations must never block the caller.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// LogNotifier routes notices to the application logger.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a logger-backed notifier.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Success(msg string) {
	n.log.Info(msg, logger.String("notice", "success"))
}

func (n *LogNotifier) Error(msg string) {
	n.log.Warn(msg, logger.String("notice", "error"))
}

func (n *LogNotifier) Info(msg string) {
	n.log.Info(msg, logger.String("notice", "info"))
}

// Spy records notices for assertions in tests.
type Spy struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
	Infos     []string
}

func (s *Spy) Success(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Successes = append(s.Successes, msg)
}

func (s *Spy) Error(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Errors = append(s.Errors, msg)
}

func (s *Spy) Info(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Infos = append(s.Infos, msg)
}
