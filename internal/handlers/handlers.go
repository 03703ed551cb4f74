package handlers

import "github.com/neeva-app/neeva-backend/internal/logger"

var lg = logger.NewNop()

// Init wires the application logger into the handler package.
func Init(l *logger.Logger) {
	lg = l
}
