// Copyright 2024 The hubproto Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hubproto

import (
	"fmt"
	"log"
	"os"
)

// Logger is the observability sink of the codec. The protocol frontends use
// it to report unrecognized message kinds and dropped arguments; they never
// log on the happy path.
type Logger interface {
	// Infof logs a message using INFO as log level.
	Infof(format string, args ...interface{})
	// Warnf logs a message using WARNING as log level.
	Warnf(format string, args ...interface{})
	// Errorf logs a message using ERROR as log level.
	Errorf(format string, args ...interface{})
}

// global logger
var globalLogger Logger = newDefaultLogger()

// GetLogger gets global logger.
func GetLogger() Logger {
	return globalLogger
}

// SetLogger sets global logger.
// NOTE: Concurrent is not safe!
func SetLogger(logger Logger) {
	if logger != nil {
		globalLogger = logger
	}
}

func newDefaultLogger() Logger {
	return &defaultLogger{log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)}
}

type defaultLogger struct {
	*log.Logger
}

// Infof logs a message using INFO as log level.
func (l *defaultLogger) Infof(format string, args ...interface{}) {
	l.Output(2, "[INFO] "+fmt.Sprintf(format, args...))
}

// Warnf logs a message using WARNING as log level.
func (l *defaultLogger) Warnf(format string, args ...interface{}) {
	l.Output(2, "[WARN] "+fmt.Sprintf(format, args...))
}

// Errorf logs a message using ERROR as log level.
func (l *defaultLogger) Errorf(format string, args ...interface{}) {
	l.Output(2, "[ERROR] "+fmt.Sprintf(format, args...))
}
